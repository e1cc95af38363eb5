package ctor

import (
	"reflect"
	"testing"
	"time"
)

func TestKebab(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Var1", "var1"},
		{"List1", "list1"},
		{"HTTPServer", "http-server"},
		{"MaxRetries", "max-retries"},
		{"HTTP2Server", "http2-server"},
		{"Var1Name", "var1-name"},
		{"X", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := kebab(tt.in); got != tt.want {
				t.Errorf("kebab(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

type color string

func (color) Choices() []string { return []string{"red", "blue"} }

func TestParam_Help(t *testing.T) {
	intPtr := reflect.TypeFor[*int]()

	tests := []struct {
		name string
		p    Param
		want string
	}{
		{"plain", Param{Type: reflect.TypeFor[string]()}, "[type: string]"},
		{"doc", Param{Type: reflect.TypeFor[int](), Doc: " count "}, "[type: int] count"},
		{"untyped", Param{Doc: "anything"}, "anything"},
		{"pointer", Param{Type: intPtr}, "[type: *int]"},
		{
			"choices",
			Param{Type: reflect.TypeFor[color](), Choices: []string{"red", "blue"}, Default: color("red"), HasDefault: true},
			"[type: color | choices: red, blue] (default: red)",
		},
		{"zero default", Param{Type: reflect.TypeFor[int](), Default: 0, HasDefault: true}, "[type: int]"},
		{"empty list default", Param{Type: reflect.TypeFor[int](), Default: []int{}, HasDefault: true}, "[type: int]"},
		{
			"list default",
			Param{Type: reflect.TypeFor[int](), Sequence: true, Default: []int{1, 2}, HasDefault: true},
			"[type: int] (default: 1,2)",
		},
		{
			"duration default",
			Param{Type: reflect.TypeFor[time.Duration](), Default: time.Second, HasDefault: true},
			"[type: Duration] (default: 1s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Help(); got != tt.want {
				t.Errorf("Help() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want bool
	}{
		{reflect.TypeFor[string](), true},
		{reflect.TypeFor[*int](), true},
		{reflect.TypeFor[[]float64](), true},
		{reflect.TypeFor[[]byte](), true},
		{reflect.TypeFor[any](), true},
		{reflect.TypeFor[[]any](), true},
		{reflect.TypeFor[map[string]int](), true},
		{reflect.TypeFor[time.Time](), true},
		{reflect.TypeFor[time.Duration](), true},
		{reflect.TypeFor[chan int](), false},
		{reflect.TypeFor[func()](), false},
		{reflect.TypeFor[error](), false},
		{reflect.TypeFor[[][]int](), false},
		{reflect.TypeFor[[][]byte](), false},
		{reflect.TypeFor[**int](), false},
		{reflect.TypeFor[[2]int](), false},
		{reflect.TypeFor[struct{ A int }](), false},
		{reflect.TypeFor[map[any]string](), false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := supported(tt.typ); got != tt.want {
				t.Errorf("supported(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestParam_classify(t *testing.T) {
	tests := []struct {
		name               string
		typ                reflect.Type
		optional, required bool
		def                any
		want               bool
	}{
		{"scalar", reflect.TypeFor[int](), false, false, nil, true},
		{"default", reflect.TypeFor[int](), false, false, 3, false},
		{"optional tag", reflect.TypeFor[int](), true, false, nil, false},
		{"pointer", reflect.TypeFor[*int](), false, false, nil, false},
		{"slice", reflect.TypeFor[[]int](), false, false, nil, false},
		{"required slice", reflect.TypeFor[[]int](), false, true, nil, true},
		{"bytes", reflect.TypeFor[[]byte](), false, false, nil, true},
		{"bool", reflect.TypeFor[bool](), false, true, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Param{Name: "p"}
			p.typed(tt.typ)

			if tt.def != nil {
				if err := p.assignDefault(tt.def); err != nil {
					t.Fatalf("assignDefault() error = %v", err)
				}
			}

			p.classify(tt.optional, tt.required)

			if p.Required != tt.want {
				t.Errorf("Required = %v, want %v", p.Required, tt.want)
			}
		})
	}
}

func TestParam_assignDefault(t *testing.T) {
	p := Param{Name: "list"}
	p.typed(reflect.TypeFor[[]int]())

	if err := p.assignDefault(5); err != nil {
		t.Fatalf("assignDefault(5) error = %v", err)
	}

	if got, want := p.Default, []int{5}; !reflect.DeepEqual(got, want) {
		t.Errorf("Default = %v, want %v", got, want)
	}

	q := Param{Name: "c"}
	q.typed(reflect.TypeFor[color]())

	if err := q.assignDefault("blue"); err != nil {
		t.Fatalf("assignDefault(string) error = %v", err)
	}

	if q.Default != color("blue") {
		t.Errorf("Default = %#v, want color(blue)", q.Default)
	}

	if got := q.Choices; !reflect.DeepEqual(got, []string{"red", "blue"}) {
		t.Errorf("Choices = %q", got)
	}
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		raw  string
		want any
	}{
		{reflect.TypeFor[int](), "42", 42},
		{reflect.TypeFor[bool](), "true", true},
		{reflect.TypeFor[[]int](), "1,2,3", []int{1, 2, 3}},
		{reflect.TypeFor[time.Duration](), "2m", 2 * time.Minute},
		{reflect.TypeFor[map[string]int](), "a=1;b=2", map[string]int{"a": 1, "b": 2}},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			v, err := decodeValue(tt.typ, tt.raw)
			if err != nil {
				t.Fatalf("decodeValue(%q) error = %v", tt.raw, err)
			}

			if got := v.Interface(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeValue(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}

	if _, err := decodeValue(reflect.TypeFor[int](), "x"); err == nil {
		t.Error("decodeValue(int, x) succeeded")
	}
}

func TestParam_tag(t *testing.T) {
	p := Param{Name: "cost", Doc: "costs $5"}
	p.typed(reflect.TypeFor[[]int]())
	p.classify(false, false)

	tag := p.tag()

	if got, want := tag.Get("help"), "[type: int] costs $$5"; got != want {
		t.Errorf("help = %q, want %q", got, want)
	}

	if got := tag.Get("type"); got != nargsType {
		t.Errorf("type = %q, want %q", got, nargsType)
	}

	if _, ok := tag.Lookup("arg"); ok {
		t.Error("optional parameter tagged as argument")
	}
}

func TestFlagName(t *testing.T) {
	if got := FlagName("ListenPort", ""); got != "listen-port" {
		t.Errorf("FlagName() = %q, want listen-port", got)
	}

	if got := FlagName("ListenPort", `name:"port"`); got != "port" {
		t.Errorf("FlagName() = %q, want port", got)
	}
}
