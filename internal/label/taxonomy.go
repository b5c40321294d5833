package label

const (
	NoFinding                 = "No Finding"
	EnlargedCardiomediastinum = "Enlarged Cardiomediastinum"
	Cardiomegaly              = "Cardiomegaly"
	LungLesion                = "Lung Lesion"
	LungOpacity               = "Lung Opacity"
	Edema                     = "Edema"
	Consolidation             = "Consolidation"
	Pneumonia                 = "Pneumonia"
	Atelectasis               = "Atelectasis"
	Pneumothorax              = "Pneumothorax"
	PleuralEffusion           = "Pleural Effusion"
	PleuralOther              = "Pleural Other"
	Fracture                  = "Fracture"
	SupportDevices            = "Support Devices"
	AirspaceOpacity           = "Airspace Opacity"
)

// Categories is the fixed 14-category chest radiograph taxonomy in report order.
var Categories = []string{
	NoFinding,
	EnlargedCardiomediastinum,
	Cardiomegaly,
	LungLesion,
	LungOpacity,
	Edema,
	Consolidation,
	Pneumonia,
	Atelectasis,
	Pneumothorax,
	PleuralEffusion,
	PleuralOther,
	Fracture,
	SupportDevices,
}

// synonyms maps alternate column names to their canonical category.
var synonyms = map[string]string{
	AirspaceOpacity: LungOpacity,
}

// Canonical returns the taxonomy name for a column header.
func Canonical(name string) string {
	if c, ok := synonyms[name]; ok {
		return c
	}
	return name
}

// IsCategory reports whether name, after synonym unification, is in the taxonomy.
func IsCategory(name string) bool {
	return categoryIndex(Canonical(name)) >= 0
}

func categoryIndex(name string) int {
	for i, c := range Categories {
		if c == name {
			return i
		}
	}
	return -1
}
