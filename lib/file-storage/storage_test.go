package filestorage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	t.Run(`GetObjectName check`, func(t *testing.T) {
		name := GetObjectName("space-1", "квартальный отчёт.pdf")
		require.True(t, strings.HasPrefix(name, "space-1/"))
		require.True(t, strings.HasSuffix(name, "-квартальный_отчёт.pdf"))

		name = GetObjectName("space-1", `..\..\etc/passwd`)
		require.NotContains(t, name, "../")
		require.True(t, strings.HasSuffix(name, "-passwd"))

		require.NotEqual(t, GetObjectName("s", "a.txt"), GetObjectName("s", "a.txt"))
	})
}
