package usecase

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
)

const (
	MaxRoomCodeLength = 64

	roomCodePrefix   = "room_"
	roomCodeLength   = 6
	roomCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// ValidateRoomCode trims the code and checks it is a usable key.
func ValidateRoomCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", apperror.ErrRoomRequired
	}

	if len(code) > MaxRoomCodeLength {
		return "", fmt.Errorf("%w: longer than %d", apperror.ErrInvalidRoomCode, MaxRoomCodeLength)
	}

	for _, r := range code {
		if !isRoomCodeRune(r) {
			return "", fmt.Errorf("%w: unexpected %q", apperror.ErrInvalidRoomCode, r)
		}
	}

	return code, nil
}

func isRoomCodeRune(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '_' || r == '-'
}

func validateName(name string, maxLength int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.ErrNameRequired
	}

	if utf8.RuneCountInString(name) > maxLength {
		return "", fmt.Errorf("%w: more than %d characters", apperror.ErrNameTooLong, maxLength)
	}

	return name, nil
}

func validateMessage(text string, maxLength int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperror.ErrEmptyMessage
	}

	if utf8.RuneCountInString(text) > maxLength {
		return "", fmt.Errorf("%w: more than %d characters", apperror.ErrMessageTooLong, maxLength)
	}

	return text, nil
}

// GenerateRoomCode returns a random code such as room_k3x9qa.
func GenerateRoomCode() string {
	return roomCodePrefix + randomCode(rand.Int)
}

// randomCode draws every character uniformly from the alphabet.
func randomCode(randInt func(r io.Reader, bound *big.Int) (*big.Int, error)) string {
	alphabetSize := big.NewInt(int64(len(roomCodeAlphabet)))

	code := make([]byte, roomCodeLength)
	for i := range code {
		n, err := randInt(rand.Reader, alphabetSize)
		if err != nil {
			panic(fmt.Errorf("failed to draw a room code character: %w", err))
		}
		code[i] = roomCodeAlphabet[n.Int64()]
	}

	return string(code)
}
