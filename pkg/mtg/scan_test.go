package mtg

import (
	"crypto/rand"
	"io"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	var (
		typ  int8       = 1
		uid             = uuid.Must(uuid.NewV4())
		str             = "123"
		list            = []string{"a", "b"}
		data RawMessage = make([]byte, 100)
	)

	_, _ = io.ReadFull(rand.Reader, data)

	body, err := Encode(typ, uid, str, list, data)
	require.Nil(t, err)

	var (
		dtyp  int8
		duid  uuid.UUID
		dstr  string
		dlist []string
		ddata RawMessage
	)

	remain, err := Scan(body, &dtyp)
	require.Nil(t, err)
	assert.Equal(t, typ, dtyp)

	remain, err = Scan(remain, &duid, &dstr, &dlist, &ddata)
	require.Nil(t, err)
	require.Len(t, remain, 0)

	assert.Equal(t, uid.String(), duid.String())
	assert.Equal(t, str, dstr)
	assert.Equal(t, list, dlist)
	assert.Equal(t, data, ddata)
}

func TestScanShortInput(t *testing.T) {
	body, err := Encode("only")
	require.Nil(t, err)

	var a, b string
	_, err = Scan(body, &a, &b)
	require.NotNil(t, err)
}
