package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"supplierfront/internal/content"
)

// Text is a piece of content copy. Markup marks text that is already safe
// HTML; the flag survives reference resolution unchanged.
type Text struct {
	Value  string `json:"value"`
	Markup bool   `json:"markup,omitempty"`
}

func Plain(s string) Text  { return Text{Value: s} }
func Markup(s string) Text { return Text{Value: s, Markup: true} }

// QuestionLookup resolves a question id to its numbered question.
type QuestionLookup func(id string) (content.Question, error)

var questionReference = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// ResolveQuestionReferences replaces every [[questionId]] in text with the
// number of the referenced question, e.g. "see question [[other]]" becomes
// "see question 7". The first unresolvable id aborts resolution.
func ResolveQuestionReferences(text Text, lookup QuestionLookup) (Text, error) {
	if text.Value == "" {
		return text, nil
	}
	matches := questionReference.FindAllStringSubmatchIndex(text.Value, -1)
	if len(matches) == 0 {
		return text, nil
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		id := text.Value[m[2]:m[3]]
		q, err := lookup(id)
		if err != nil {
			return Text{}, fmt.Errorf("%w: %s: %w", ErrQuestionNotFound, id, err)
		}
		b.WriteString(text.Value[last:m[0]])
		b.WriteString(strconv.Itoa(q.Number))
		last = m[1]
	}
	b.WriteString(text.Value[last:])
	return Text{Value: b.String(), Markup: text.Markup}, nil
}

// FirstQuestionIndex is the number of questions that come before the given
// section in the manifest.
func FirstQuestionIndex(manifest *content.Manifest, sectionSlug string) (int, error) {
	count := 0
	for _, section := range manifest.Sections {
		if section.Slug == sectionSlug {
			return count, nil
		}
		count += len(section.QuestionIDs())
	}
	return 0, notFound("section", sectionSlug)
}
