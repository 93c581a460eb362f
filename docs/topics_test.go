package docs

import (
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics ensures the documentation stays in sync with itself:
// every topic listed in readme.md loads, and every topic file is listed.
func TestTopics(t *testing.T) {
	source, err := os.ReadFile("readme.md")
	if err != nil {
		t.Fatalf("failed to read readme.md: %v", err)
	}

	listed := readmeTopics(t, source)
	if len(listed) == 0 {
		t.Fatal("no topics listed in readme.md")
	}

	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("topic %q listed in readme.md cannot be loaded: %v", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() = %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic file %s.md is not listed in readme.md", topic)
		}
	}
}

// readmeTopics extracts the topic names from the readme's bullet list, where
// each item is "name: description".
func readmeTopics(t *testing.T, source []byte) []string {
	t.Helper()

	mdParser := goldmark.DefaultParser()
	root := mdParser.Parse(text.NewReader(source))

	var topics []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		item, ok := n.(*ast.ListItem)
		if !ok {
			return ast.WalkContinue, nil
		}
		line := string(nodeText(item, source))
		if name, _, found := strings.Cut(line, ":"); found {
			topics = append(topics, strings.TrimSpace(name))
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		t.Fatalf("failed to walk readme.md: %v", err)
	}
	return topics
}

func nodeText(n ast.Node, source []byte) []byte {
	var sb strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if txt, ok := c.(*ast.Text); ok {
				sb.Write(txt.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return []byte(sb.String())
}

func TestGetTopicStar(t *testing.T) {
	content, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) = %v", err)
	}
	if !strings.Contains(content, "# Dates") || !strings.Contains(content, "# Prices") {
		t.Errorf("GetTopic(*) does not concatenate all topics")
	}
}

func TestGetTopicUnknown(t *testing.T) {
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("GetTopic(no-such-topic) should fail")
	}
}
