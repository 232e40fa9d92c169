package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

// PromptsPathEnv points at a YAML file that replaces the embedded prompt set.
const PromptsPathEnv = "PROMPTS_YAML"

type Name string

const (
	Analysis          Name = "analysis"
	QuickCheck        Name = "quick_check"
	VocabularyExtract Name = "vocabulary_extract"
)

var required = []Name{Analysis, QuickCheck, VocabularyExtract}

//go:embed prompts.yaml
var promptsFS embed.FS

type yamlPromptFile struct {
	Version int              `yaml:"version"`
	Prompts []yamlPromptSpec `yaml:"prompts"`
}

type yamlPromptSpec struct {
	Name   string `yaml:"name"`
	Quick  bool   `yaml:"quick"`
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

type compiled struct {
	quick  bool
	system *template.Template
	user   *template.Template
}

// Set is a parsed, validated collection of prompt templates.
type Set struct {
	prompts map[Name]compiled
}

// Rendered is one prompt ready to send. Quick marks prompts meant for the fast model.
type Rendered struct {
	System string
	User   string
	Quick  bool
}

type PersonaData struct {
	Goals           []string
	ExperienceLevel string
	FocusAreas      []string
	PreferredTone   string
}

type AnalysisData struct {
	Content            string
	Persona            *PersonaData
	HistoricalPatterns []string
}

type ContentData struct {
	Content string
}

var funcs = template.FuncMap{"join": strings.Join}

// Load parses the prompt set from PROMPTS_YAML when set, else from the embedded file.
func Load(log *logger.Logger) (*Set, error) {
	if path := strings.TrimSpace(os.Getenv(PromptsPathEnv)); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if log != nil {
			log.Info("Loading prompts from file", "path", path)
		}
		return Parse(data)
	}
	data, err := promptsFS.ReadFile("prompts.yaml")
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// MustDefault parses the embedded prompt set and panics if it is invalid.
func MustDefault() *Set {
	data, err := promptsFS.ReadFile("prompts.yaml")
	if err != nil {
		panic(err)
	}
	s, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return s
}

func Parse(data []byte) (*Set, error) {
	var file yamlPromptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	set := &Set{prompts: make(map[Name]compiled, len(file.Prompts))}
	for _, p := range file.Prompts {
		name := Name(strings.TrimSpace(p.Name))
		if name == "" {
			return nil, fmt.Errorf("prompt without a name")
		}
		if _, dup := set.prompts[name]; dup {
			return nil, fmt.Errorf("duplicate prompt %q", name)
		}
		sys, err := template.New(string(name) + ".system").Funcs(funcs).Option("missingkey=error").Parse(p.System)
		if err != nil {
			return nil, fmt.Errorf("prompt %q system: %w", name, err)
		}
		usr, err := template.New(string(name) + ".user").Funcs(funcs).Option("missingkey=error").Parse(p.User)
		if err != nil {
			return nil, fmt.Errorf("prompt %q user: %w", name, err)
		}
		set.prompts[name] = compiled{quick: p.Quick, system: sys, user: usr}
	}
	for _, name := range required {
		if _, ok := set.prompts[name]; !ok {
			return nil, fmt.Errorf("missing prompt %q", name)
		}
	}
	return set, nil
}

func (s *Set) Render(name Name, data any) (Rendered, error) {
	p, ok := s.prompts[name]
	if !ok {
		return Rendered{}, fmt.Errorf("unknown prompt %q", name)
	}
	var sys, usr bytes.Buffer
	if err := p.system.Execute(&sys, data); err != nil {
		return Rendered{}, fmt.Errorf("render %s system: %w", name, err)
	}
	if err := p.user.Execute(&usr, data); err != nil {
		return Rendered{}, fmt.Errorf("render %s user: %w", name, err)
	}
	return Rendered{
		System: strings.TrimSpace(sys.String()),
		User:   strings.TrimSpace(usr.String()),
		Quick:  p.quick,
	}, nil
}
