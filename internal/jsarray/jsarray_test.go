package jsarray_test

import (
	"errors"
	"testing"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/jsarray"
	"github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"
)

func TestToJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"elided middle value", `[1,,2]`, `[1,null,2]`},
		{"elided leading value", `[,1]`, `[null,1]`},
		{"consecutive elisions", `[1,,,2]`, `[1,null,null,2]`},
		{"leading and trailing runs", `[,,1,,]`, `[null,null,1,null,]`},
		{"nested arrays", `[[,1],[2,,3]]`, `[[null,1],[2,null,3]]`},
		{"strict json unchanged", `[1,"two",{"a":3}]`, `[1,"two",{"a":3}]`},
		{"commas inside strings are opaque", `["a,,b",,1]`, `["a,,b",null,1]`},
		{"bracket inside string", `["[,",1]`, `["[,",1]`},
		{"escaped quote inside string", `["a\",,b",,1]`, `["a\",,b",null,1]`},
		{"whitespace dropped", "[1, ,\n2]", `[1,null,2]`},
		{"empty input", ``, ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := jsarray.ToJSON(tc.in)
			if got != tc.want {
				t.Errorf("ToJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLoads(t *testing.T) {
	t.Run("repairs and parses", func(t *testing.T) {
		v, err := jsarray.Loads([]byte(`[1,,2]`))
		if err != nil {
			t.Fatalf("Loads returned error: %v", err)
		}

		arr, ok := v.([]any)
		if !ok {
			t.Fatalf("Loads returned %T, want []any", v)
		}
		if len(arr) != 3 {
			t.Fatalf("got %d elements, want 3", len(arr))
		}
		if arr[1] != nil {
			t.Errorf("arr[1] = %v, want nil", arr[1])
		}
	})

	t.Run("valid json is identity", func(t *testing.T) {
		v, err := jsarray.Loads([]byte(`{"success":true,"songs":[]}`))
		if err != nil {
			t.Fatalf("Loads returned error: %v", err)
		}
		m, ok := v.(map[string]any)
		if !ok {
			t.Fatalf("Loads returned %T, want map[string]any", v)
		}
		if m["success"] != true {
			t.Errorf("success = %v, want true", m["success"])
		}
	})

	t.Run("unparseable input yields ParseError with original text", func(t *testing.T) {
		_, err := jsarray.Loads([]byte(`[1,,2`))
		if err == nil {
			t.Fatal("expected an error")
		}

		var perr *shared.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("error is %T, want *shared.ParseError", err)
		}
		if perr.Input != `[1,,2` {
			t.Errorf("ParseError.Input = %q, want original input", perr.Input)
		}
	})
}
