package devserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Run("keeps the leading sentences", func(t *testing.T) {
		title, summary := summarize("One is first.  Two follows!\nThree ends? Four.", 3)
		require.Equal(t, "One is first", title)
		require.Equal(t, "One is first. Two follows! Three ends?", summary)
	})

	t.Run("length beyond the text", func(t *testing.T) {
		_, summary := summarize("Only one sentence", 10)
		require.Equal(t, "Only one sentence", summary)
	})

	t.Run("decimal points do not split", func(t *testing.T) {
		require.Len(t, splitSentences("Pi is 3.14 roughly. Yes."), 2)
	})

	t.Run("long titles are cut on a word", func(t *testing.T) {
		title, _ := summarize(strings.Repeat("word ", 30)+".", 1)
		require.True(t, strings.HasSuffix(title, "..."))
		require.LessOrEqual(t, len(title), maxTitleLength+3)
	})

	t.Run("empty text", func(t *testing.T) {
		title, summary := summarize("   ", 3)
		require.Empty(t, title)
		require.Empty(t, summary)
	})
}

func TestParseSummaryLen(t *testing.T) {
	require.Equal(t, 5, parseSummaryLen("5"))
	require.Equal(t, 5, parseSummaryLen(`"5"`))
	require.Equal(t, defaultSummaryLen, parseSummaryLen(""))
	require.Equal(t, defaultSummaryLen, parseSummaryLen("-2"))
	require.Equal(t, defaultSummaryLen, parseSummaryLen("null"))
}
