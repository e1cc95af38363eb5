package ctor

import (
	"fmt"
	"reflect"

	"github.com/alecthomas/kong"
)

// nargsType is the kong mapper name of optional sequence flags.
const nargsType = "nargs"

var registry = kong.NewRegistry().RegisterDefaults()

// nargs decodes a sequence flag from every value that follows it, up to the
// next flag. A value joined to the flag with "=" is split on the flag's
// separator instead, as are values from the environment and config files.
func (b *binding) nargs(ctx *kong.DecodeContext, target reflect.Value) error {
	el := target.Type().Elem()

	mapper := registry.ForType(el)
	if mapper == nil {
		return fmt.Errorf("no mapper for element type of %s", target.Type())
	}

	var values []string

	switch t := ctx.Scan.Peek(); {
	case t.Type == kong.FlagValueToken:
		ctx.Scan.Pop()

		switch v := t.Value.(type) {
		case string:
			values = kong.SplitEscaped(v, ctx.Value.Tag.Sep)
		case []any:
			for _, e := range v {
				values = append(values, fmt.Sprint(e))
			}
		default:
			values = []string{fmt.Sprint(v)}
		}

	default:
		numeric := b.numeric()

		for _, t := range ctx.Scan.PopWhile(func(t kong.Token) bool {
			return t.Type == kong.UntypedToken &&
				(t.IsValue() || numeric && isNegative(t.String()))
		}) {
			values = append(values, t.String())
		}
	}

	scan := kong.ScanAsType(kong.FlagValueToken, values...)
	for !scan.Peek().IsEOL() {
		v := reflect.New(el).Elem()
		if err := mapper.Decode(ctx.WithScanner(scan), v); err != nil {
			return err
		}

		target.Set(reflect.Append(target, v))
	}

	return nil
}

// decodeValue decodes raw into a new value of type t the way kong decodes a
// flag value.
func decodeValue(t reflect.Type, raw string) (reflect.Value, error) {
	mapper := registry.ForType(t)
	if mapper == nil {
		return reflect.Value{}, fmt.Errorf("no mapper for %s", t)
	}

	ctx := &kong.DecodeContext{
		Value: &kong.Value{
			Tag:  &kong.Tag{Sep: ',', MapSep: ';'},
			Flag: &kong.Flag{},
		},
		Scan: kong.ScanAsType(kong.FlagValueToken, raw),
	}

	v := reflect.New(t).Elem()
	if err := mapper.Decode(ctx, v); err != nil {
		return reflect.Value{}, err
	}

	return v, nil
}
