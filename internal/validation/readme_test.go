package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitt/corpora-audit/internal/types"
)

const sampleReadme = `# Wikitext Corpus

A dump of wiki articles, tokenized and split by year.

## Processed variants

The tkn variant holds tokenized text.
`

func TestParseReadme_TitleAndDescription(t *testing.T) {
	title, desc := ParseReadme(sampleReadme)
	assert.Equal(t, "Wikitext Corpus", title)
	assert.Equal(t, "A dump of wiki articles, tokenized and split by year.", desc)
}

func TestParseReadme_NoHeading(t *testing.T) {
	title, desc := ParseReadme("just a plain sentence\nmore text\n")
	assert.Empty(t, title)
	assert.Equal(t, "just a plain sentence", desc)
}

func TestParseReadme_HeadingOnly(t *testing.T) {
	title, desc := ParseReadme("# Lonely Title\n")
	assert.Equal(t, "Lonely Title", title)
	assert.Empty(t, desc)
}

func TestParseReadme_SkipsSubheadingsForDescription(t *testing.T) {
	title, desc := ParseReadme("# Title\n\n## Section\n\nactual prose here\n")
	assert.Equal(t, "Title", title)
	assert.Equal(t, "actual prose here", desc)
}

func TestParseReadme_Empty(t *testing.T) {
	title, desc := ParseReadme("")
	assert.Empty(t, title)
	assert.Empty(t, desc)
}

func TestEvaluateReadme_Missing(t *testing.T) {
	exists, complete, problems := EvaluateReadme("/corpora/wiki", "", false, []string{"tkn"})
	assert.False(t, exists)
	assert.False(t, complete)
	require.Len(t, problems, 1)
	assert.Equal(t, types.MissingReadme, problems[0].Kind)
}

func TestEvaluateReadme_UnmentionedVariant(t *testing.T) {
	// README mentions only "tkn"; "txt" must yield exactly one problem naming it.
	exists, complete, problems := EvaluateReadme("/corpora/wiki", sampleReadme, true, []string{"tkn", "txt"})
	assert.True(t, exists)
	assert.False(t, complete)
	require.Len(t, problems, 1)
	assert.Equal(t, types.IncompleteReadme, problems[0].Kind)
	assert.Contains(t, problems[0].Message, `"txt"`)
}

func TestEvaluateReadme_MentionAnywhereFlipsComplete(t *testing.T) {
	readme := sampleReadme + "\nThe txt variant holds raw text.\n"
	_, complete, problems := EvaluateReadme("/corpora/wiki", readme, true, []string{"tkn", "txt"})
	assert.True(t, complete)
	assert.Empty(t, problems)
}

func TestEvaluateReadme_CaseInsensitiveMatch(t *testing.T) {
	_, complete, problems := EvaluateReadme("/corpora/wiki", "# T\n\nWe ship a TKN variant.\n", true, []string{"tkn"})
	assert.True(t, complete)
	assert.Empty(t, problems)
}

func TestEvaluateReadme_VacuouslyComplete(t *testing.T) {
	exists, complete, problems := EvaluateReadme("/corpora/wiki", sampleReadme, true, nil)
	assert.True(t, exists)
	assert.True(t, complete)
	assert.Empty(t, problems)
}
