package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataAttr(t *testing.T) {
	assert.Equal(t, `{&#34;id&#34;:&#34;7&#34;}`, DataAttr(map[string]string{"id": "7"}))
	assert.Equal(t, "{}", DataAttr(make(chan int)))
}

func TestAlert(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Alert(AlertError, `Invalid <b>credentials</b>`).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `class="alert alert-error"`)
	assert.Contains(t, buf.String(), "Invalid &lt;b&gt;credentials&lt;/b&gt;")
}
