package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// PolicyFlag overrides scheduler.policy. Empty keeps the configured one.
type PolicyFlag string

const (
	PolicyClassic     PolicyFlag = "classic"
	PolicyAccelerated PolicyFlag = "accelerated"
)

// Set implements pflag.Value.
func (p *PolicyFlag) Set(v string) error {
	switch v {
	case string(PolicyClassic):
		*p = PolicyClassic
	case string(PolicyAccelerated):
		*p = PolicyAccelerated
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, PolicyClassic, PolicyAccelerated)
	}
	return nil
}

// String implements pflag.Value.
func (p *PolicyFlag) String() string {
	if p == nil {
		return ""
	}
	return string(*p)
}

// Type implements pflag.Value.
func (p *PolicyFlag) Type() string {
	return "PolicyFlag"
}

type SortFlag string

const (
	SortByPath SortFlag = "path"
	SortByDue  SortFlag = "due"
)

// Set implements pflag.Value.
func (s *SortFlag) Set(v string) error {
	switch v {
	case string(SortByPath):
		*s = SortByPath
	case string(SortByDue):
		*s = SortByDue
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, SortByPath, SortByDue)
	}
	return nil
}

// String implements pflag.Value.
func (s *SortFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *SortFlag) Type() string {
	return "SortFlag"
}

type Format string

func (f *Format) Set(val string) error {
	for _, format := range allFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "Format"
}

const (
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatHTML     Format = "html"
)

var (
	_ pflag.Value = (*PolicyFlag)(nil)
	_ pflag.Value = (*SortFlag)(nil)
	_ pflag.Value = (*Format)(nil)

	allFormats = []Format{FormatMarkdown, FormatPDF, FormatHTML}
)
