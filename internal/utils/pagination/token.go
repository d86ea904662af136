package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const sequenceField = "seq"

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}

// EncodeSequenceToken creates a token pointing after the row with the given
// sequence number, for logs read newest first.
func EncodeSequenceToken(sequence int64) string {
	return EncodeMultiFieldToken(sequenceField, strconv.FormatInt(sequence, 10))
}

// DecodeSequenceToken returns the sequence number encoded by EncodeSequenceToken.
func DecodeSequenceToken(token string) (int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 || parts[0] != sequenceField {
		return 0, fmt.Errorf("invalid pagination token format (fields)")
	}
	sequence, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || sequence < 0 {
		return 0, fmt.Errorf("invalid pagination token format (sequence parse): %q", parts[1])
	}
	return sequence, nil
}
