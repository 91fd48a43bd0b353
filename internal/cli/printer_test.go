package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-search/internal/cli"
	"github.com/ytget/yt-search/internal/model"
)

func TestPrinterStyledResult(t *testing.T) {
	var out, errOut bytes.Buffer
	p := cli.NewPrinter(&out, &errOut)

	p.Result(3, model.NewSearchResult("id1", "", "Ann", 1234567, "20200315"))

	require.Contains(t, out.String(), "3.")
	require.Contains(t, out.String(), "id1")
	require.Contains(t, out.String(), "1,234,567 views")
	require.Contains(t, out.String(), "2020.03.15")
	require.Empty(t, errOut.String())
}

func TestPrinterJSONKeepsStdoutForResults(t *testing.T) {
	var out, errOut bytes.Buffer
	p := cli.NewPrinter(&out, &errOut)
	p.SetJSON(true)

	p.Info("searching")
	p.Result(1, model.NewSearchResult("id1", "Song", "Ann", 5, ""))
	p.Success("done")
	p.Warning("slow")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)

	var got map[string]any
	require.NoError(t, sonic.UnmarshalString(lines[0], &got))
	require.Equal(t, "Song", got["title"])
	require.NotContains(t, got, "upload_date")
	require.Contains(t, errOut.String(), "slow")
}
