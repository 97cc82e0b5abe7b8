package pipelinefmt

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const (
	warnInput  = "Warning: No input block found. Pipeline may be missing essential configuration as per https://logstash-kafka.readthedocs.io/en/stable/configuration/"
	warnOutput = "Warning: No output block found. Pipeline may be missing essential configuration as per https://logstash-kafka.readthedocs.io/en/stable/configuration/"
	warnFilter = "Warning: No filter block found. Consider adding filters for processing events as per https://www.elastic.co/docs/reference/logstash/config-examples"
)

const wellFormed = `input {
    stdin {
    }
}

filter {
    mutate {
        add_field => { "env" => "prod" }
        rename => { "host" => "%{[host][name]}" }
    }
}

output {
    stdout {
        codec => rubydebug
    }
}
`

func TestFormatScenarios(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOutput string
		wantErrors []string
		wantFixes  []string
	}{
		{
			name:       "brace spacing and indentation",
			input:      "input{\nstdin{\n}\n}",
			wantOutput: "input {\n    stdin {\n    }\n}",
			wantErrors: []string{warnOutput, warnFilter},
			wantFixes: []string{
				"Line 1: Cleaned whitespace - was: 'input{' now: 'input {'",
				"Line 2: Cleaned whitespace - was: 'stdin{' now: 'stdin {'",
			},
		},
		{
			name:       "nested blocks on one line stay on one line",
			input:      "input{stdin{}}",
			wantOutput: "input {stdin {}}",
			wantErrors: []string{warnOutput, warnFilter},
			wantFixes: []string{
				"Line 1: Cleaned whitespace - was: 'input{stdin{}}' now: 'input {stdin {}}'",
			},
		},
		{
			name:       "unquoted value gets quoted",
			input:      "filter {\n  mutate {\n    add_field => test value\n  }\n}",
			wantOutput: "filter {\n    mutate {\n        add_field => \"test value\"\n    }\n}",
			wantErrors: []string{warnInput, warnOutput},
			wantFixes: []string{
				`Line 3: Added quotes around value - was: 'test value' now: '"test value"'`,
			},
		},
		{
			name:       "missing closing brace",
			input:      "output {\n  stdout {\n}",
			wantOutput: "output {\n    stdout {\n    }\n}",
			wantErrors: []string{
				"Line 1: Missing closing brace '}' - attempting auto-fix.",
				warnInput,
				warnFilter,
			},
			wantFixes: []string{"Added missing closing brace as new line"},
		},
		{
			name:       "closing brace glued to text",
			input:      "}tcp {",
			wantOutput: "}\ntcp {\n}",
			wantErrors: []string{
				"Line 1: Extra closing brace '}' found.",
				"Line 1: Missing closing brace '}' - attempting auto-fix.",
				warnInput,
				warnOutput,
				warnFilter,
			},
			wantFixes: []string{
				"Line 1: Split closing brace and text into separate lines",
				"Added missing closing brace as new line",
			},
		},
		{
			name:       "unterminated quote closed",
			input:      "output {\n  file {\n    path => \"/tmp/out.log\n  }\n}",
			wantOutput: "output {\n    file {\n        path => \"/tmp/out.log\"\n    }\n}",
			wantErrors: []string{warnInput, warnFilter},
			wantFixes:  []string{"Line 3: Added missing closing quote"},
		},
		{
			name:       "arrow spacing normalized",
			input:      "input {\n  beats {\n    port=>5044\n  }\n}",
			wantOutput: "input {\n    beats {\n        port => 5044\n    }\n}",
			wantErrors: []string{warnOutput, warnFilter},
			wantFixes: []string{
				"Line 3: Cleaned whitespace - was: 'port=>5044' now: 'port => 5044'",
			},
		},
		{
			name:       "empty input",
			input:      "",
			wantOutput: "",
			wantErrors: []string{warnInput, warnOutput, warnFilter},
			wantFixes:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs, fixes := Format(tt.input)
			if got != tt.wantOutput {
				t.Errorf("output:\nwant %q\ngot  %q", tt.wantOutput, got)
			}
			if !reflect.DeepEqual(errs, tt.wantErrors) {
				t.Errorf("errors:\nwant %q\ngot  %q", tt.wantErrors, errs)
			}
			if !reflect.DeepEqual(fixes, tt.wantFixes) {
				t.Errorf("fixes:\nwant %q\ngot  %q", tt.wantFixes, fixes)
			}
		})
	}
}

func TestFormatWrapsLongLine(t *testing.T) {
	input := strings.Repeat("a", 150)

	got, _, fixes := Format(input)

	want := strings.Repeat("a", 100) + "\n    " + strings.Repeat("a", 50)
	if got != want {
		t.Errorf("output:\nwant %q\ngot  %q", want, got)
	}
	if !reflect.DeepEqual(fixes, []string{"Wrapped long line into 2 lines"}) {
		t.Errorf("fixes: got %q", fixes)
	}
}

func TestFormatIdempotent(t *testing.T) {
	got, errs, fixes := Format(wellFormed)

	want := strings.TrimSuffix(wellFormed, "\n")
	if got != want {
		t.Errorf("well-formed input changed:\nwant:\n%s\ngot:\n%s", want, got)
	}
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %q", errs)
	}
	if len(fixes) != 0 {
		t.Errorf("expected no fixes, got %q", fixes)
	}

	// Formatting the output again must be a no-op.
	again, _, fixes := Format(got)
	if again != got {
		t.Errorf("second pass changed output:\n%s", again)
	}
	if len(fixes) != 0 {
		t.Errorf("second pass applied fixes: %q", fixes)
	}
}

func TestFormatPreservesFieldReferences(t *testing.T) {
	refs := []string{"%{host}", "%{[host][name]}", "%{IP:client}", "%{+YYYY.MM.dd}"}

	inputs := []string{
		"filter{\nmutate{\nadd_field => { \"src\" => \"%{host}\" }\n}\n}",
		"output {\nelasticsearch {\nindex => logs-%{+YYYY.MM.dd}\n}\n}",
		"filter {\ngrok {\nmatch => { \"message\" => \"%{IP:client}\" }\n}\n}",
		"filter {\nmutate{ rename => { \"x\" => \"%{[host][name]}\" } }\n}",
		"}grok{ match => \"%{IP:client}\" }",
	}

	for _, input := range inputs {
		got, _, _ := Format(input)
		for _, ref := range refs {
			if strings.Count(got, ref) != strings.Count(input, ref) {
				t.Errorf("field reference %s altered:\ninput: %q\noutput: %q", ref, input, got)
			}
		}
	}
}

func TestFormatBraceBalanceMatchesDiagnostics(t *testing.T) {
	inputs := []string{
		wellFormed,
		"input {\n  stdin {\n",
		"input {\n}\n}\n}",
		"}tcp {\n}}udp {",
		"filter {\nmutate {\nadd_tag => [\"a\"]\n",
		"a {\nfoo\n}\nb {\n",
		"filter { if [x] { drop {} } else { mutate { } }",
	}

	for _, input := range inputs {
		got, errs, _ := Format(input)

		extra := 0
		for _, e := range errs {
			if strings.Contains(e, "Extra closing brace") {
				extra++
			}
		}
		balance := strings.Count(got, "{") - strings.Count(got, "}")
		if balance != -extra {
			t.Errorf("input %q: brace balance %d, want %d (extra braces reported: %d)\noutput:\n%s",
				input, balance, -extra, extra, got)
		}
	}
}

func TestFormatBlankLineRules(t *testing.T) {
	input := "filter {\n\n  mutate {\n\n  }\n\n}\n\n\n\noutput {\n\n  stdout {}\n}\n\n"

	got, _, fixes := Format(input)

	want := "filter {\n    mutate {\n    }\n}\n\noutput {\n    stdout {}\n}"
	if got != want {
		t.Errorf("output:\nwant %q\ngot  %q", want, got)
	}

	lines := strings.Split(got, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] == "" && strings.HasSuffix(lines[i-1], "{") {
			t.Errorf("blank line after opening brace survived at line %d", i+1)
		}
		if lines[i-1] == "" && strings.HasPrefix(strings.TrimSpace(lines[i]), "}") {
			t.Errorf("blank line before closing brace survived at line %d", i)
		}
	}

	if !reflect.DeepEqual(fixes, []string{"Removed extra whitespace and empty lines"}) {
		t.Errorf("fixes: got %q", fixes)
	}
}

func TestFormatWrapDoesNotSplitQuotes(t *testing.T) {
	tokens := make([]string, 20)
	for i := range tokens {
		tokens[i] = `"ab cd"`
	}
	input := "tags => [" + strings.Join(tokens, " ") + "]"

	got, _, fixes := Format(input)

	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected the line to be wrapped, got %q", got)
	}
	for _, line := range lines {
		if strings.Count(line, `"`)%2 != 0 {
			t.Errorf("wrapped line splits a quoted string: %q", line)
		}
	}
	if len(fixes) != 1 || !strings.HasPrefix(fixes[0], "Wrapped long line into") {
		t.Errorf("fixes: got %q", fixes)
	}
}

func TestFormatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.conf")
	if err := os.WriteFile(path, []byte(wellFormed), 0o644); err != nil {
		t.Fatal(err)
	}

	got, errs, fixes := FormatFile(path)
	if got != strings.TrimSuffix(wellFormed, "\n") {
		t.Errorf("unexpected output:\n%s", got)
	}
	if len(errs) != 0 || len(fixes) != 0 {
		t.Errorf("errors %q, fixes %q", errs, fixes)
	}
}

func TestFormatFileMissing(t *testing.T) {
	got, errs, fixes := FormatFile(filepath.Join(t.TempDir(), "missing.conf"))

	if got != "" {
		t.Errorf("expected no formatted text, got %q", got)
	}
	if len(errs) != 1 || !strings.Contains(errs[0], "missing.conf") {
		t.Errorf("expected a single read error, got %q", errs)
	}
	if len(fixes) != 0 {
		t.Errorf("expected no fixes, got %q", fixes)
	}
}

func TestFormatConcurrent(t *testing.T) {
	want, _, _ := Format(wellFormed)

	done := make(chan string)
	for range 8 {
		go func() {
			got, _, _ := Format(wellFormed)
			done <- got
		}()
	}
	for range 8 {
		if got := <-done; got != want {
			t.Errorf("concurrent call produced different output:\n%s", got)
		}
	}
}
