package taxform

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Record is the JSON-shaped view of a struct that step editors work on.
type Record map[string]any

// ToRecord converts a struct into its JSON-shaped map.
func ToRecord(v any) (Record, error) {
	var rec Record
	if err := convert(v, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ToRecords converts a slice of structs into records.
func ToRecords(v any) ([]Record, error) {
	recs := []Record{}
	if err := convert(v, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Decode converts a record, a slice of records or any JSON-shaped value into dst.
func Decode(v any, dst any) error {
	return convert(v, dst)
}

func convert(v any, dst any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %T: %w", v, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", dst, err)
	}
	return nil
}

// Get reads a dotted key.
func (r Record) Get(key string) any {
	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		return r[head]
	}
	child, ok := r[head].(map[string]any)
	if !ok {
		return nil
	}
	return Record(child).Get(rest)
}

// Set writes a dotted key, creating intermediate maps.
func (r Record) Set(key string, v any) {
	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		r[head] = v
		return
	}
	child, ok := r[head].(map[string]any)
	if !ok {
		child = map[string]any{}
		r[head] = child
	}
	Record(child).Set(rest, v)
}

func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if m, ok := v.(map[string]any); ok {
			out[k] = map[string]any(Record(m).Clone())
			continue
		}
		out[k] = v
	}
	return out
}

// FormatInput renders a stored value as editable text.
func FormatInput(f Field, v any) string {
	switch f.Kind {
	case KindNumber, KindInteger:
		n, _ := v.(float64)
		return strconv.FormatFloat(n, 'f', -1, 64)
	case KindBool:
		b, _ := v.(bool)
		return strconv.FormatBool(b)
	default:
		s, _ := v.(string)
		return s
	}
}

// ParseInput converts text typed into a field into the value stored in a
// record. Empty numbers are zero.
func ParseInput(f Field, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch f.Kind {
	case KindNumber:
		cleaned := strings.NewReplacer(",", "", "$", "", "%", "").Replace(raw)
		if cleaned == "" {
			return float64(0), nil
		}
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil, fmt.Errorf("must be a number")
		}
		return n, nil
	case KindInteger:
		if raw == "" {
			return float64(0), nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("must be a whole number")
		}
		return float64(n), nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("must be true or false")
		}
		return b, nil
	case KindDate:
		if raw == "" {
			return "", nil
		}
		if _, err := time.Parse(DateLayout, raw); err != nil {
			return nil, fmt.Errorf("use YYYY-MM-DD")
		}
		return raw, nil
	case KindChoice:
		if raw == "" {
			return "", nil
		}
		for _, o := range f.Options {
			if strings.EqualFold(o.Value, raw) || strings.EqualFold(o.Label, raw) {
				return o.Value, nil
			}
		}
		return nil, fmt.Errorf("choose one of %s", optionList(f.Options))
	default:
		return raw, nil
	}
}

func optionList(opts []Option) string {
	labels := make([]string, 0, len(opts))
	for _, o := range opts {
		labels = append(labels, o.Label)
	}
	return strings.Join(labels, ", ")
}

// DecodeFor converts a record, or a slice of records for list paths, into
// the typed value stored at path.
func DecodeFor(path Path, v any) (any, error) {
	switch path {
	case PathPersonalInfo:
		return decodeAs[PersonalInfo](v)
	case PathBankInterest:
		return decodeAs[[]BankInterestEntry](v)
	case PathDividends:
		return decodeAs[[]DividendEntry](v)
	case PathRentalProperty:
		return decodeAs[[]RentalPropertyEntry](v)
	case PathMotorVehicle:
		return decodeAs[MotorVehicleClaim](v)
	case PathWorkRelatedTravel:
		return decodeAs[WorkRelatedTravelClaim](v)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPath, path)
}

func decodeAs[T any](v any) (any, error) {
	var out T
	if err := convert(v, &out); err != nil {
		return nil, err
	}
	return out, nil
}
