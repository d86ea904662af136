package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeSequenceToken(t *testing.T) {
	for _, seq := range []int64{0, 1, 42, 1<<62 - 1} {
		token := EncodeSequenceToken(seq)
		assert.NotEmpty(t, token, "Token should not be empty")

		decoded, err := DecodeSequenceToken(token)
		assert.NoError(t, err, "Decoding should not return an error")
		assert.Equal(t, seq, decoded, "Sequence should match after decode")
	}
}

func TestDecodeSequenceTokenError(t *testing.T) {
	// Test invalid base64
	_, err := DecodeSequenceToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test wrong field layout
	_, err = DecodeSequenceToken(EncodeMultiFieldToken("date", "2023-05-15"))
	assert.Error(t, err, "Should return an error for a token of another kind")
	assert.Contains(t, err.Error(), "fields")

	// Test non-numeric sequence
	_, err = DecodeSequenceToken(EncodeMultiFieldToken("seq", "abc"))
	assert.Error(t, err, "Should return an error for a non-numeric sequence")
	assert.Contains(t, err.Error(), "sequence parse")

	// Test negative sequence
	_, err = DecodeSequenceToken(EncodeMultiFieldToken("seq", "-5"))
	assert.Error(t, err, "Should return an error for a negative sequence")
}

func TestMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")
	parts, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, parts)
}
