package secure

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPAN_ValidCardMasksFirstSixLastFour(t *testing.T) {
	pan, err := NewPAN("4242424242424242")
	require.NoError(t, err)

	assert.Equal(t, "424242********4242", pan.PartialView())
	assert.Equal(t, "PAN(424242********4242)", pan.String())
	assert.Equal(t, "424242", pan.FirstSix())
	assert.Equal(t, "4242", pan.LastFour())
}

func TestPAN_MaskWidthIndependentOfLength(t *testing.T) {
	long, err := NewPAN("4242 4242 4242 4242 428")
	require.NoError(t, err)
	short, err := NewPAN("4242424242422")
	require.NoError(t, err)

	// 19 and 13 digit PANs produce the same mask width.
	assert.Len(t, long.PartialView(), 18)
	assert.Len(t, short.PartialView(), 18)
}

func TestPAN_LuhnFailureRejectsConstruction(t *testing.T) {
	_, err := NewPAN("4242424242424241")
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "PAN", verr.Type)
	assert.Equal(t, RuleChecksum, verr.Rule)
}

func TestPAN_SeparatorsStrippedBeforeValidation(t *testing.T) {
	pan, err := NewPAN("4242-4242 4242_4242")
	require.NoError(t, err)
	assert.Equal(t, "424242********4242", pan.PartialView())
}

func TestPAN_RejectsBadLengthAndCharset(t *testing.T) {
	var verr *ValidationError

	_, err := NewPAN("42424242424")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, RuleLength, verr.Rule)

	_, err = NewPAN("42424242424242ab")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, RuleCharset, verr.Rule)
}

func TestCVV_FullyRedacted(t *testing.T) {
	cvv, err := NewCVV("123")
	require.NoError(t, err)

	assert.Equal(t, "***", cvv.PartialView())
	assert.NotContains(t, cvv.String(), "123")

	_, err = NewCVV("12")
	require.Error(t, err)
	_, err = NewCVV("12a")
	require.Error(t, err)
}

func TestCardHolderName_SingleCharacterMasksFirstLast(t *testing.T) {
	name, err := NewCardHolderName("Y")
	require.NoError(t, err)

	// A length-1 value must not get a rendering that reveals length 1.
	assert.Equal(t, "Y***Y", name.PartialView())
}

func TestCardHolderName_MaskUppercasesEdges(t *testing.T) {
	name, err := NewCardHolderName("jane o'brien")
	require.NoError(t, err)
	assert.Equal(t, "J***N", name.PartialView())
}

func TestAccountNumber_ShortValueFallsBackToConstantMask(t *testing.T) {
	acct, err := NewAccountNumber("123456789")
	require.NoError(t, err)
	assert.Equal(t, "***", acct.PartialView())

	long, err := NewAccountNumber("12345678901")
	require.NoError(t, err)
	assert.Equal(t, "123456********8901", long.PartialView())
}

func TestIBAN_ChecksumValidation(t *testing.T) {
	iban, err := NewIBAN("gb82 west 1234 5698 7654 32")
	require.NoError(t, err)
	assert.Equal(t, "GB82WE********5432", iban.PartialView())

	_, err = NewIBAN("GB82WEST12345698765431")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, RuleChecksum, verr.Rule)
}

func TestRoutingNumber_Tier5Unmasked(t *testing.T) {
	rn, err := NewRoutingNumber("021000021")
	require.NoError(t, err)
	assert.Equal(t, "021000021", rn.PartialView())

	_, err = NewRoutingNumber("021000022")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, RuleChecksum, verr.Rule)
}

func TestPhoneNumber_LengthOnlyView(t *testing.T) {
	ph, err := NewPhoneNumber("+1 (555) 123-4567")
	require.NoError(t, err)
	assert.Equal(t, "[12 chars]", ph.PartialView())
}

func TestEmailAddress_FormatValidation(t *testing.T) {
	email, err := NewEmailAddress("jane.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "J***M", email.PartialView())

	for _, raw := range []string{"no-at-sign", "@example.com", "a@", "a@b@c"} {
		_, err := NewEmailAddress(raw)
		assert.Error(t, err, raw)
	}
}

func TestWalletAddress_EVMAndBase58(t *testing.T) {
	evm, err := NewWalletAddress("0xE4d365a5a8fC0DCEE9E3C5985D7FcBab8B4A0fE1")
	require.NoError(t, err)
	assert.Equal(t, "0***1", evm.PartialView())

	_, err = NewWalletAddress("0xE4d365a5a8fC0DCEE9E3C5985D7FcBab8B4A0fZZ")
	assert.Error(t, err)

	_, err = NewWalletAddress("4Nd1mYbFbDhJrXM8Kp9qRtSvWxYzA2Bc3DeFgHjKmNpQ")
	assert.NoError(t, err)

	// 0, O, I and l are excluded from the base58 alphabet.
	_, err = NewWalletAddress("4Nd1mYbFbDhJrXM8Kp9qRtSvWxYzA2Bc3DeFgHjKmNp0")
	assert.Error(t, err)
}

func TestPaymentToken_Tier2View(t *testing.T) {
	tok, err := NewPaymentToken("tok_1NirD82eZvKYlo2CVNiw")
	require.NoError(t, err)
	assert.Equal(t, "tok_1N********VNiw", tok.PartialView())
}

func TestLeakageFreedom_DefaultFormattingNeverShowsContent(t *testing.T) {
	const raw = "4242424242424242"
	pan, err := NewPAN(raw)
	require.NoError(t, err)

	for _, rendered := range []string{
		fmt.Sprintf("%v", pan),
		fmt.Sprintf("%s", pan),
		fmt.Sprintf("%+v", pan),
		fmt.Sprintf("%#v", pan),
		fmt.Sprint(pan),
	} {
		assert.NotContains(t, rendered, raw)
	}

	data, err := json.Marshal(pan)
	require.NoError(t, err)
	assert.NotContains(t, string(data), raw)
	assert.Contains(t, string(data), "424242********4242")
}

func TestExpose_IsTheOnlyPathToRawContent(t *testing.T) {
	pan, err := NewPAN("4242424242424242")
	require.NoError(t, err)

	var wire string
	pan.Expose(func(raw []byte) {
		wire = string(raw)
	})
	assert.Equal(t, "4242424242424242", wire)
}

func TestDestroy_WipesBackingMemory(t *testing.T) {
	pan, err := NewPAN("4242424242424242")
	require.NoError(t, err)

	backing := pan.buf
	pan.Destroy()

	for i, b := range backing {
		assert.Zerof(t, b, "byte %d not wiped", i)
	}
}

func TestClone_DoesNotShareBackingMemory(t *testing.T) {
	cvv, err := NewCVV("999")
	require.NoError(t, err)
	cp := cvv.Clone()

	require.True(t, cvv.Equal(cp))
	cvv.Destroy()

	// The clone survives destruction of the original.
	var raw string
	cp.Expose(func(b []byte) { raw = string(b) })
	assert.Equal(t, "999", raw)
}

func TestEqualAndFingerprint_OperateWithoutSurfacingContent(t *testing.T) {
	a, err := NewPAN("4242424242424242")
	require.NoError(t, err)
	b, err := NewPAN("4242 4242 4242 4242")
	require.NoError(t, err)
	c, err := NewPAN("4012888888881881")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotContains(t, a.Fingerprint(), "4242424242424242")
}

func TestValidationError_MessageNamesRuleNotContent(t *testing.T) {
	_, err := NewPAN("4242424242424241")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "4242424242424241")
}
