package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetSkip
)

// Field is one inspected value with its resolved widget. Max is the full-scale
// value of a bar and is zero for other widgets.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Max     float32
	Options map[string]string
}

// Scales maps the name in a `scale:<name>` bar option to its full-scale value.
type Scales map[string]float32

// FluidScales derives particle bar ranges from the solver stiffness: density bars
// span twice the rest density and pressure bars the pressure reached there.
func FluidScales(restDensity, pressureK, nearPressureK float32) Scales {
	return Scales{
		"density":       2 * restDensity,
		"density_near":  restDensity,
		"pressure":      restDensity * pressureK,
		"pressure_near": restDensity * nearPressureK,
	}
}

// ParseTag parses an inspect struct tag of the form `inspect:"widget[,key:value...]"`,
// e.g. `inspect:"bar,scale:density,max:14"` or `inspect:"label,fmt:%.1f"`.
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)
	if tag == "" {
		return WidgetAuto, options
	}

	head, rest, _ := strings.Cut(tag, ",")
	widget := widgetNames[strings.TrimSpace(head)]

	if rest != "" {
		for _, part := range strings.Split(rest, ",") {
			if k, v, ok := strings.Cut(strings.TrimSpace(part), ":"); ok {
				options[k] = v
			}
		}
	}
	return widget, options
}

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"bool":  WidgetBool,
	"skip":  WidgetSkip,
}

// fieldPlan is the tag-derived part of a Field, computed once per struct type.
type fieldPlan struct {
	index   int
	name    string
	widget  Widget
	options map[string]string
}

var plans sync.Map // reflect.Type -> []fieldPlan

func planFor(t reflect.Type) []fieldPlan {
	if cached, ok := plans.Load(t); ok {
		return cached.([]fieldPlan)
	}

	var plan []fieldPlan
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		widget, options := ParseTag(sf.Tag.Get("inspect"))
		switch {
		case widget == WidgetSkip:
			continue
		case widget == WidgetAuto && sf.Type.Kind() == reflect.Bool:
			widget = WidgetBool
		case widget == WidgetAuto:
			widget = WidgetLabel
		}
		plan = append(plan, fieldPlan{index: i, name: sf.Name, widget: widget, options: options})
	}

	actual, _ := plans.LoadOrStore(t, plan)
	return actual.([]fieldPlan)
}

// ExtractFields lists the exported fields of a struct or struct pointer, skipping
// those tagged `inspect:"skip"`. Bars with a `scale` option take their range from
// scales and fall back to their `max` option. Non-structs yield nil.
func ExtractFields(v any, scales Scales) []Field {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}

	plan := planFor(rv.Type())
	fields := make([]Field, 0, len(plan))
	for _, fp := range plan {
		f := Field{
			Name:    fp.name,
			Value:   rv.Field(fp.index).Interface(),
			Widget:  fp.widget,
			Options: fp.options,
		}
		if f.Widget == WidgetBar {
			f.Max = barMax(fp.options, scales)
		}
		fields = append(fields, f)
	}
	return fields
}

func barMax(options map[string]string, scales Scales) float32 {
	if s := scales[options["scale"]]; s > 0 {
		return s
	}
	return GetMax(options)
}

// GetMax returns the max option as a float, defaulting to 1.
func GetMax(options map[string]string) float32 {
	v, err := strconv.ParseFloat(options["max"], 32)
	if err != nil || v <= 0 {
		return 1
	}
	return float32(v)
}

// FormatValue formats a field value, using fmtStr when given. Floats default to
// two decimals; anything else uses %v, so Stringers print themselves.
func FormatValue(value any, fmtStr string) string {
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	if f, ok := value.(float32); ok {
		return strconv.FormatFloat(float64(f), 'f', 2, 32)
	}
	if f, ok := value.(float64); ok {
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	return fmt.Sprint(value)
}

// GetFloatValue converts any numeric kind to float32.
func GetFloatValue(value any) (float32, bool) {
	rv := reflect.ValueOf(value)
	switch {
	case !rv.IsValid():
		return 0, false
	case rv.CanFloat():
		return float32(rv.Float()), true
	case rv.CanInt():
		return float32(rv.Int()), true
	case rv.CanUint():
		return float32(rv.Uint()), true
	}
	return 0, false
}
