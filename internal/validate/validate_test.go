package validate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"candelore/internal/validate"
)

func TestHexColor(t *testing.T) {
	for _, ok := range []string{"#FFFFFF", "#3a5f3a", "#000000"} {
		_, valid := validate.HexColor(ok)
		require.True(t, valid, ok)
	}
	for _, bad := range []string{"FFFFFF", "#FFF", "#GGGGGG", "#FFFFFFF", ""} {
		_, valid := validate.HexColor(bad)
		require.False(t, valid, bad)
	}
}

func TestQtyClamps(t *testing.T) {
	require.Equal(t, 1, validate.Qty("0"))
	require.Equal(t, 1, validate.Qty("-3"))
	require.Equal(t, 1, validate.Qty("junk"))
	require.Equal(t, 7, validate.Qty(" 7 "))
	require.Equal(t, 99, validate.Qty("500"))
}

func TestPhone(t *testing.T) {
	_, ok := validate.Phone("+380 (50) 111-22-33")
	require.True(t, ok)
	_, ok = validate.Phone("call me maybe")
	require.False(t, ok)
	_, ok = validate.Phone("123")
	require.False(t, ok)
}

func TestContactMethodNormalizes(t *testing.T) {
	require.Equal(t, "viber", validate.ContactMethod(" Viber "))
	require.Equal(t, "telegram", validate.ContactMethod("telegram"))
	require.Equal(t, "phone", validate.ContactMethod("carrier pigeon"))
}

func TestIndex(t *testing.T) {
	require.Equal(t, 0, validate.Index("0"))
	require.Equal(t, 12, validate.Index("12"))
	require.Equal(t, -1, validate.Index("-1"))
	require.Equal(t, -1, validate.Index("abc"))
}

func TestPrice(t *testing.T) {
	require.Equal(t, 10.5, validate.Price("10.5"))
	require.Equal(t, 0.0, validate.Price("-4"))
	require.Equal(t, 0.0, validate.Price("free"))
}
