package models

import (
	"strings"
	"time"
)

// Severity drives the color of a rendered notification
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityNegative Severity = "negative"
	SeverityNeutral  Severity = "neutral"
)

// NotificationField is one named value of a notification
type NotificationField struct {
	Name   string
	Value  string
	Inline bool
}

// Notification is a channel-agnostic message payload
type Notification struct {
	// Title is the headline
	Title string

	// Description is optional body text
	Description string

	// Severity selects the color
	Severity Severity

	// Fields are rendered in order
	Fields []*NotificationField

	// Footer is optional trailing text
	Footer string

	// Timestamp is optional and not part of Render
	Timestamp time.Time
}

// Field returns the first field with the given name
func (n *Notification) Field(name string) (*NotificationField, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Render returns a deterministic plain-text form used to detect content changes
func (n *Notification) Render() string {
	if n == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(n.Title)
	b.WriteString("\n")
	if n.Description != "" {
		b.WriteString(n.Description)
		b.WriteString("\n")
	}
	for _, f := range n.Fields {
		b.WriteString("## ")
		b.WriteString(f.Name)
		b.WriteString("\n")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	if n.Footer != "" {
		b.WriteString(n.Footer)
		b.WriteString("\n")
	}

	return b.String()
}
