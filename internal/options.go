package internal

import (
	"fmt"
	"strings"
)

// Source selects which flow a request belongs to.
type Source string

const (
	SourceTopic      Source = "topic"
	SourceAggregator Source = "hn"
	SourceURL        Source = "url"
	SourceText       Source = "text"
)

// Sources lists every flow in display order.
var Sources = []Source{SourceTopic, SourceAggregator, SourceURL, SourceText}

// Label is the name used in user-facing messages.
func (s Source) Label() string {
	switch s {
	case SourceAggregator:
		return "Hacker News"
	default:
		return string(s)
	}
}

// RequiresQuery reports whether the flow needs a topic, URL or text.
func (s Source) RequiresQuery() bool {
	return s != SourceAggregator
}

func (s Source) valid() bool {
	switch s {
	case SourceTopic, SourceAggregator, SourceURL, SourceText:
		return true
	}
	return false
}

// ParseSource accepts the canonical names plus a few aliases.
func ParseSource(v string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "topic", "reddit":
		return SourceTopic, nil
	case "hn", "hackernews", "aggregator":
		return SourceAggregator, nil
	case "url":
		return SourceURL, nil
	case "text":
		return SourceText, nil
	}
	return "", &ValidationError{Field: "source", Value: v}
}

// Format is the shape of the generated summary.
type Format string

const (
	FormatPlain   Format = "plain"
	FormatBullets Format = "bullets"
	FormatTLDR    Format = "tldr"
)

// WireValue is the summary_format parameter sent to the service.
func (f Format) WireValue() string {
	if f == FormatPlain || f == "" {
		return "text"
	}
	return string(f)
}

// Label returns the name shown next to the format selector.
func (f Format) Label() string {
	switch f {
	case FormatBullets:
		return "Bullets"
	case FormatTLDR:
		return "TL;DR"
	default:
		return "Plain"
	}
}

// ParseFormat accepts "plain", "text", "bullets" and "tldr".
func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "plain", "text":
		return FormatPlain, nil
	case "bullets", "bullet":
		return FormatBullets, nil
	case "tldr", "tl;dr":
		return FormatTLDR, nil
	}
	return "", &ValidationError{Field: "format", Value: v}
}

// Length is the requested summary length.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Label returns the name shown next to the length selector.
func (l Length) Label() string {
	switch l {
	case LengthShort:
		return "Short"
	case LengthLong:
		return "Long"
	default:
		return "Medium"
	}
}

// ParseLength parses a length name; empty means medium.
func ParseLength(v string) (Length, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "short":
		return LengthShort, nil
	case "", "medium":
		return LengthMedium, nil
	case "long":
		return LengthLong, nil
	}
	return "", &ValidationError{Field: "length", Value: v}
}

// Template selects the server-side prompt strategy.
type Template string

const (
	TemplateBasic       Template = "basic"
	TemplateSentiment   Template = "sentiment"
	TemplateComparative Template = "comparative"
	TemplateDaily       Template = "daily"
	TemplateExecutive   Template = "executive"
	TemplateUI          Template = "ui"
)

// Templates lists every prompt template in selector order.
var Templates = []Template{
	TemplateBasic,
	TemplateSentiment,
	TemplateComparative,
	TemplateDaily,
	TemplateExecutive,
	TemplateUI,
}

var templateLabels = map[Template]string{
	TemplateBasic:       "Basic Summary",
	TemplateSentiment:   "Sentiment Analysis",
	TemplateComparative: "Comparative Summary",
	TemplateDaily:       "Daily Digest",
	TemplateExecutive:   "Executive-Level Summary",
	TemplateUI:          "Customized for UI Display",
}

// Label returns the human-readable template name.
func (t Template) Label() string {
	if label, ok := templateLabels[t.orDefault()]; ok {
		return label
	}
	return string(t)
}

func (t Template) orDefault() Template {
	if t == "" {
		return TemplateBasic
	}
	return t
}

// ParseTemplate parses a template name; empty means basic.
func ParseTemplate(v string) (Template, error) {
	t := Template(strings.ToLower(strings.TrimSpace(v))).orDefault()
	if _, ok := templateLabels[t]; !ok {
		return "", &ValidationError{Field: "template", Value: v}
	}
	return t, nil
}

// RequestOptions describes one summarization request. Values are copied, never
// shared, so a request in flight is unaffected by later edits.
type RequestOptions struct {
	Source    Source   `json:"source" yaml:"source"`
	Query     string   `json:"query,omitempty" yaml:"query,omitempty"`
	Format    Format   `json:"format" yaml:"format"`
	Length    Length   `json:"length" yaml:"length"`
	Sentiment bool     `json:"sentiment" yaml:"sentiment"`
	Template  Template `json:"template,omitempty" yaml:"template,omitempty"`
}

// DefaultOptions returns the options a new session starts with.
func DefaultOptions() RequestOptions {
	return RequestOptions{
		Source:   SourceTopic,
		Format:   FormatPlain,
		Length:   LengthMedium,
		Template: TemplateBasic,
	}
}

// Normalized trims the query, drops it for the aggregator flow and fills in
// defaults for unset fields.
func (o RequestOptions) Normalized() RequestOptions {
	o.Query = strings.TrimSpace(o.Query)
	if o.Source == SourceAggregator {
		o.Query = ""
	}
	if o.Format == "" {
		o.Format = FormatPlain
	}
	if o.Length == "" {
		o.Length = LengthMedium
	}
	o.Template = o.Template.orDefault()
	return o
}

// Validate checks the options locally. It never touches the network.
func (o RequestOptions) Validate() error {
	if !o.Source.valid() {
		return &ValidationError{Source: o.Source, Field: "source", Value: string(o.Source)}
	}
	if o.Source.RequiresQuery() && strings.TrimSpace(o.Query) == "" {
		return &ValidationError{Source: o.Source, Field: "query"}
	}
	if _, err := ParseFormat(string(o.Format)); err != nil {
		return err
	}
	if _, err := ParseLength(string(o.Length)); err != nil {
		return err
	}
	if _, err := ParseTemplate(string(o.Template)); err != nil {
		return err
	}
	return nil
}

// ValidateOptions normalizes and validates in one step.
func ValidateOptions(o RequestOptions) (RequestOptions, error) {
	n := o.Normalized()
	if err := n.Validate(); err != nil {
		return n, err
	}
	return n, nil
}

// String renders the options for log lines.
func (o RequestOptions) String() string {
	if o.Source == SourceAggregator {
		return fmt.Sprintf("source=%s", o.Source)
	}
	query := o.Query
	if r := []rune(query); len(r) > 40 {
		query = string(r[:40]) + "…"
	}
	return fmt.Sprintf("source=%s query=%q format=%s length=%s sentiment=%t template=%s",
		o.Source, query, o.Format, o.Length, o.Sentiment, o.Template.orDefault())
}
