package domain

// FeastColumns is the exact, ordered header of the feasts table.
var FeastColumns = []string{
	"name", "introit", "collect", "epistle_ref", "epistle",
	"gat", "gradual", "alleluia", "tract", "gospel_ref",
	"gospel", "offertory", "communion",
}

// Feast is a named liturgical occasion with its proper texts.
// Feasts are read-only for the lifetime of the process.
type Feast struct {
	// Name is unique within the feasts table.
	Name string

	Introit    string
	Collect    string
	EpistleRef string
	Epistle    string

	// Gat holds a combined gradual/alleluia/tract text when the source gives one.
	Gat      string
	Gradual  string
	Alleluia string
	Tract    string

	GospelRef string
	Gospel    string
	Offertory string
	Communion string
}

// Attr returns the value of the column named name.
func (f Feast) Attr(name string) (string, bool) {
	switch name {
	case "name":
		return f.Name, true
	case "introit":
		return f.Introit, true
	case "collect":
		return f.Collect, true
	case "epistle_ref":
		return f.EpistleRef, true
	case "epistle":
		return f.Epistle, true
	case "gat":
		return f.Gat, true
	case "gradual":
		return f.Gradual, true
	case "alleluia":
		return f.Alleluia, true
	case "tract":
		return f.Tract, true
	case "gospel_ref":
		return f.GospelRef, true
	case "gospel":
		return f.Gospel, true
	case "offertory":
		return f.Offertory, true
	case "communion":
		return f.Communion, true
	default:
		return "", false
	}
}

// FeastFromRow builds a Feast from a row whose cells follow FeastColumns.
// It returns ErrInvalidInput when the row has the wrong width.
func FeastFromRow(row []string) (Feast, error) {
	if len(row) != len(FeastColumns) {
		return Feast{}, ErrInvalidInput
	}
	return Feast{
		Name:       row[0],
		Introit:    row[1],
		Collect:    row[2],
		EpistleRef: row[3],
		Epistle:    row[4],
		Gat:        row[5],
		Gradual:    row[6],
		Alleluia:   row[7],
		Tract:      row[8],
		GospelRef:  row[9],
		Gospel:     row[10],
		Offertory:  row[11],
		Communion:  row[12],
	}, nil
}

// Row returns the feast's cells in FeastColumns order.
func (f Feast) Row() []string {
	row := make([]string, len(FeastColumns))
	for i, col := range FeastColumns {
		row[i], _ = f.Attr(col)
	}
	return row
}
