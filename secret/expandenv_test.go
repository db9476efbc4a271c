package secret

import (
	"errors"
	"strings"
	"testing"
)

func TestExpandEnvStrict_MissingVarErrors(t *testing.T) {
	t.Setenv("HEALTHSTATUS_PRESENT", "ok")

	_, err := ExpandEnvStrict("a=${HEALTHSTATUS_PRESENT} b=${HEALTHSTATUS_MISSING_B} c=$HEALTHSTATUS_MISSING_A")
	if !errors.Is(err, ErrMissingEnv) {
		t.Fatalf("ExpandEnvStrict() error = %v, want ErrMissingEnv", err)
	}
	if !strings.HasSuffix(err.Error(), "HEALTHSTATUS_MISSING_A, HEALTHSTATUS_MISSING_B") {
		t.Errorf("error should list missing names sorted, got: %v", err)
	}
}

func TestExpandEnvStrict_DollarEscape(t *testing.T) {
	t.Setenv("HEALTHSTATUS_X", "y")

	out, err := ExpandEnvStrict("$$${HEALTHSTATUS_X}")
	if err != nil {
		t.Fatalf("ExpandEnvStrict() error = %v", err)
	}
	if out != "$y" {
		t.Errorf("ExpandEnvStrict() = %q, want %q", out, "$y")
	}
}

func TestExpandStrict(t *testing.T) {
	env := map[string]string{"KEY": "s3cret", "EMPTY": ""}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "no references", in: "plain text", want: "plain text"},
		{name: "braced", in: "key: ${KEY}", want: "key: s3cret"},
		{name: "bare", in: "key: $KEY", want: "key: s3cret"},
		{name: "set but empty", in: "[${EMPTY}]", want: "[]"},
		{name: "missing", in: "${NOPE}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandStrict(tt.in, lookup)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExpandStrict() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExpandStrict() = %q, want %q", got, tt.want)
			}
		})
	}
}
