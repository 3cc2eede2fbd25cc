package manifest

import (
	"errors"
	"testing"
)

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "plain declaration",
			input: "version = \"2.3.1\"\n",
			want:  "2.3.1",
		},
		{
			name:  "first of several wins",
			input: "version = \"1.0.0\"\nversion = \"9.9.9\"\n",
			want:  "1.0.0",
		},
		{
			name:  "declaration after other lines",
			input: "name = \"foo\"\nversion = \"0.2.0_rc1\"\n",
			want:  "0.2.0_rc1",
		},
		{
			name:    "indented declaration does not count",
			input:   "  version = \"2.3.1\"\n",
			wantErr: true,
		},
		{
			name:    "version inside dependency line does not count",
			input:   "foo = { path = \"../foo\", version = \"2.3.0\" }\n",
			wantErr: true,
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVersion([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("ExtractVersion() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrNoVersion) {
					t.Errorf("error = %v, want ErrNoVersion", err)
				}
				return
			}

			if got != tt.want {
				t.Errorf("ExtractVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		want          string
		wantVersion   string
		wantRewritten int
		wantErr       bool
	}{
		{
			name: "rewrites every dependency to the declared version",
			input: "version = \"2.3.1\"\n" +
				"foo = { path = \"../foo\", version = \"2.3.0\" }\n" +
				"bar = { path = \"./bar\", version = \"2.3.0\" }\n" +
				"unrelated_line = true\n",
			want: "version = \"2.3.1\"\n" +
				"foo = { path = \"../foo\", version = \"2.3.1\" }\n" +
				"bar = { path = \"./bar\", version = \"2.3.1\" }\n" +
				"unrelated_line = true\n",
			wantVersion:   "2.3.1",
			wantRewritten: 2,
		},
		{
			name: "no dependency lines is a no-op",
			input: "version = \"1.0.0\"\n" +
				"name = \"solo\"\n",
			want: "version = \"1.0.0\"\n" +
				"name = \"solo\"\n",
			wantVersion:   "1.0.0",
			wantRewritten: 0,
		},
		{
			name:    "missing version declaration",
			input:   "foo = { path = \"../foo\", version = \"2.3.0\" }\n",
			wantErr: true,
		},
		{
			name: "first version declaration wins",
			input: "version = \"2.0.0\"\n" +
				"version = \"3.0.0\"\n" +
				"foo = { path = \"../foo\", version = \"1.0.0\" }\n",
			want: "version = \"2.0.0\"\n" +
				"version = \"3.0.0\"\n" +
				"foo = { path = \"../foo\", version = \"2.0.0\" }\n",
			wantVersion:   "2.0.0",
			wantRewritten: 1,
		},
		{
			name: "near-miss lines pass through untouched",
			input: "version = \"2.3.1\"\n" +
				"foo = { path = \"../foo\" }\n" +
				"bar = { version = \"1.0.0\", path = \"./bar\" }\n" +
				"  baz = { path = \"./baz\", version = \"1.0.0\" }\n",
			want: "version = \"2.3.1\"\n" +
				"foo = { path = \"../foo\" }\n" +
				"bar = { version = \"1.0.0\", path = \"./bar\" }\n" +
				"  baz = { path = \"./baz\", version = \"1.0.0\" }\n",
			wantVersion:   "2.3.1",
			wantRewritten: 0,
		},
		{
			name: "identifier and path are preserved",
			input: "version = \"0.5.0\"\n" +
				"weird_name_1 = { path = \"../a/b/c_d\", version = \"0.0.0\" }\n",
			want: "version = \"0.5.0\"\n" +
				"weird_name_1 = { path = \"../a/b/c_d\", version = \"0.5.0\" }\n",
			wantVersion:   "0.5.0",
			wantRewritten: 1,
		},
		{
			name: "crlf line endings survive",
			input: "version = \"2.0.0\"\r\n" +
				"foo = { path = \"../foo\", version = \"1.0.0\" }\r\n",
			want: "version = \"2.0.0\"\r\n" +
				"foo = { path = \"../foo\", version = \"2.0.0\" }\r\n",
			wantVersion:   "2.0.0",
			wantRewritten: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, version, rewritten, err := Rewrite([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("Rewrite() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrNoVersion) {
					t.Errorf("error = %v, want ErrNoVersion", err)
				}
				return
			}

			if string(got) != tt.want {
				t.Errorf("Rewrite() =\n%q\nwant\n%q", got, tt.want)
			}
			if version != tt.wantVersion {
				t.Errorf("version = %q, want %q", version, tt.wantVersion)
			}
			if rewritten != tt.wantRewritten {
				t.Errorf("rewritten = %d, want %d", rewritten, tt.wantRewritten)
			}
		})
	}
}

func TestRewriteIdempotent(t *testing.T) {
	input := []byte("version = \"2.3.1\"\n" +
		"foo = { path = \"../foo\", version = \"2.3.0\" }\n" +
		"bar = { path = \"./bar\", version = \"2.2.0\" }\n")

	once, _, _, err := Rewrite(input)
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	twice, _, _, err := Rewrite(once)
	if err != nil {
		t.Fatalf("second Rewrite() error = %v", err)
	}

	if string(once) != string(twice) {
		t.Errorf("second pass changed output:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestScan(t *testing.T) {
	input := []byte("version = \"2.3.1\"\n" +
		"foo = { path = \"../foo\", version = \"2.3.0\" }\n" +
		"unrelated_line = true\n" +
		"bar = { path = \"./bar\", version = \"2.2.0\" }\n")

	deps := Scan(input)
	if len(deps) != 2 {
		t.Fatalf("Scan() returned %d dependencies, want 2", len(deps))
	}

	want := []Dependency{
		{Name: "foo", Path: "../foo", Version: "2.3.0"},
		{Name: "bar", Path: "./bar", Version: "2.2.0"},
	}
	for i, dep := range deps {
		if dep != want[i] {
			t.Errorf("deps[%d] = %+v, want %+v", i, dep, want[i])
		}
	}
}

func TestVersions(t *testing.T) {
	input := []byte("version = \"1.0.0\"\nother = 1\nversion = \"2.0.0\"\n")

	got := Versions(input)
	if len(got) != 2 || got[0] != "1.0.0" || got[1] != "2.0.0" {
		t.Errorf("Versions() = %v, want [1.0.0 2.0.0]", got)
	}
}
