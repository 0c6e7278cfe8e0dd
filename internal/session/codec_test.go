package session

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	codec := NewCodec("test-signature-key")

	cred := codec.Issue(42)

	userID, err := codec.Verify(cred)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestIssue_CredentialFormat(t *testing.T) {
	codec := NewCodec("test-signature-key")

	cred := codec.Issue(42)

	assert.Regexp(t, regexp.MustCompile(`^42\.[0-9a-f]{64}$`), cred)
}

func TestIssue_Deterministic(t *testing.T) {
	codec := NewCodec("test-signature-key")

	assert.Equal(t, codec.Issue(7), codec.Issue(7))
	assert.NotEqual(t, codec.Issue(7), codec.Issue(8))
}

func TestVerify_RejectsTamperedSignature(t *testing.T) {
	codec := NewCodec("test-signature-key")
	cred := codec.Issue(42)

	// Flip one hex digit of the signature.
	last := cred[len(cred)-1]
	flipped := byte('0')
	if last == '0' {
		flipped = '1'
	}
	tampered := cred[:len(cred)-1] + string(flipped)

	_, err := codec.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerify_RejectsForeignKey(t *testing.T) {
	cred := NewCodec("key-a").Issue(42)

	_, err := NewCodec("key-b").Verify(cred)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerify_RejectsSwappedUserID(t *testing.T) {
	codec := NewCodec("test-signature-key")
	cred := codec.Issue(42)

	_, sig, ok := strings.Cut(cred, ".")
	require.True(t, ok)

	_, err := codec.Verify("43." + sig)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerify_RejectsMalformed(t *testing.T) {
	codec := NewCodec("test-signature-key")

	for _, cred := range []string{
		"",
		"42",
		"no-separator-here",
		"." + codec.sign(""),
		"42." + "not-a-signature",
	} {
		_, err := codec.Verify(cred)
		assert.ErrorIs(t, err, ErrInvalidCredential, "credential %q", cred)
	}
}

func TestVerify_RejectsNonNumericID(t *testing.T) {
	codec := NewCodec("test-signature-key")

	// Correctly signed but the subject is not a user id.
	cred := "abc." + codec.sign("abc")

	_, err := codec.Verify(cred)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
