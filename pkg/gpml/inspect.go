package gpml

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/pathway"
)

// Summary describes a payload without building a model from it.
type Summary struct {
	SchemaVersion int            `json:"schemaVersion" yaml:"schemaVersion"`
	Title         string         `json:"title,omitempty" yaml:"title,omitempty"`
	Elements      int            `json:"elements" yaml:"elements"`
	Anchors       int            `json:"anchors" yaml:"anchors"`
	Counts        map[string]int `json:"counts" yaml:"counts"`
	Synthetic     bool           `json:"synthetic" yaml:"synthetic"`
}

const pathwayPath = "/*[local-name()='Pathway']"

var (
	countExprs = func() map[string]*xpath.Expr {
		out := make(map[string]*xpath.Expr, len(kindToTag))
		for _, tag := range kindToTag {
			out[tag] = xpath.MustCompile(fmt.Sprintf("count(%s/*[local-name()='%s'])", pathwayPath, tag))
		}
		return out
	}()
	anchorExpr    = xpath.MustCompile("count(" + pathwayPath + "/*/*[local-name()='Anchor'])")
	syntheticExpr = xpath.MustCompile(fmt.Sprintf("count(%s/*[local-name()='Info'][@source='%s'])", pathwayPath, pathway.CopiedSource))
	titleExpr     = xpath.MustCompile(fmt.Sprintf("string(%s/*[local-name()='Info'][not(@source='%s')][1]/@title)", pathwayPath, pathway.CopiedSource))
)

// Inspect summarizes a payload with XPath queries. It is cheaper than
// [Unmarshal] and does not check references, so a payload that inspects
// cleanly may still fail to decode.
//
// Like Unmarshal, empty input yields a nil summary and a nil error.
func Inspect(data []byte) (*Summary, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "malformed document")
	}
	root := xmlquery.FindOne(doc, pathwayPath)
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidPayload, "not a pathway document")
	}
	version, err := strconv.Atoi(root.SelectAttr("schemaVersion"))
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidPayload, "missing or invalid schema version")
	}

	nav := func() xpath.NodeNavigator { return xmlquery.CreateXPathNavigator(doc) }
	s := &Summary{
		SchemaVersion: version,
		Counts:        make(map[string]int, len(countExprs)),
	}
	for tag, expr := range countExprs {
		if n := evalCount(expr, nav()); n > 0 {
			s.Counts[tag] = n
			s.Elements += n
		}
	}
	s.Anchors = evalCount(anchorExpr, nav())
	s.Synthetic = evalCount(syntheticExpr, nav()) > 0
	if title, ok := titleExpr.Evaluate(nav()).(string); ok {
		s.Title = title
	}
	return s, nil
}

func evalCount(expr *xpath.Expr, nav xpath.NodeNavigator) int {
	if f, ok := expr.Evaluate(nav).(float64); ok {
		return int(f)
	}
	return 0
}
