package raw

// Name object
type NameObj struct{ Val string }

func (n NameObj) Type() string { return "name" }

// Number object. F is used only when IsInt is false.
type NumberObj struct {
	I     int64
	F     float64
	IsInt bool
}

func (n NumberObj) Type() string { return "number" }

// Array object
type ArrayObj struct{ Items []Object }

func (a *ArrayObj) Type() string    { return "array" }
func (a *ArrayObj) Append(o Object) { a.Items = append(a.Items, o) }

// DictEntry is one key/value pair of a dictionary.
type DictEntry struct {
	Key   string
	Value Object
}

// Dictionary object. Keys serialize in insertion order.
type DictObj struct{ Entries []DictEntry }

func (d *DictObj) Type() string { return "dict" }

// Set replaces the value of an existing key or appends a new entry.
func (d *DictObj) Set(key string, value Object) *DictObj {
	for i := range d.Entries {
		if d.Entries[i].Key == key {
			d.Entries[i].Value = value
			return d
		}
	}
	d.Entries = append(d.Entries, DictEntry{Key: key, Value: value})
	return d
}

// Stream object
type StreamObj struct {
	Dict *DictObj
	Data []byte
}

func (s *StreamObj) Type() string { return "stream" }

// Reference object
type RefObj struct{ R ObjectRef }

func (r RefObj) Type() string { return "ref" }

// Helpers
func NameLiteral(v string) NameObj       { return NameObj{Val: v} }
func NumberInt(i int64) NumberObj        { return NumberObj{I: i, IsInt: true} }
func NumberFloat(f float64) NumberObj    { return NumberObj{F: f} }
func NewArray(items ...Object) *ArrayObj { return &ArrayObj{Items: items} }
func Dict() *DictObj                     { return &DictObj{} }
func Ref(num, gen int) RefObj            { return RefObj{R: ObjectRef{Num: num, Gen: gen}} }

// NewStream builds a stream whose dictionary carries the data length.
func NewStream(dict *DictObj, data []byte) *StreamObj {
	if dict == nil {
		dict = Dict()
	}
	dict.Set("Length", NumberInt(int64(len(data))))
	return &StreamObj{Dict: dict, Data: data}
}
