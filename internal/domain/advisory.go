package domain

// IssueCategory classifies what a crop diagnosis found.
type IssueCategory string

const (
	CategoryPest       IssueCategory = "Pest"
	CategoryDisease    IssueCategory = "Disease"
	CategoryDeficiency IssueCategory = "Deficiency"
	CategoryOther      IssueCategory = "Other"
)

// CropDiagnosis is the shaped result of a vision diagnosis call.
// Diagnosis, Category and Confidence are pulled from tagged fields in
// the prose response; FullText preserves the complete advisory body.
type CropDiagnosis struct {
	Diagnosis  string
	Category   IssueCategory
	Confidence int // 0-100
	Management string
	Source     string
	FullText   string
	Citations  []Citation
}

// ForecastDay is one day of the weather forecast.
type ForecastDay struct {
	Date            string  `json:"date"`
	Condition       string  `json:"condition"`
	MaxTemp         float64 `json:"maxTemp"`
	MinTemp         float64 `json:"minTemp"`
	RainProbability float64 `json:"rainProbability"`
}

// WeatherReport carries current agro-meteorological metrics plus a
// short forecast, as returned by the grounded weather capability.
type WeatherReport struct {
	Upazila            string        `json:"upazila"`
	District           string        `json:"district"`
	Temp               float64       `json:"temp"`
	Condition          string        `json:"condition"`
	Description        string        `json:"description"`
	Humidity           float64       `json:"humidity"`
	WindSpeed          float64       `json:"windSpeed"`
	RainProbability    float64       `json:"rainProbability"`
	Evapotranspiration float64       `json:"evapotranspiration"`
	SoilTemperature    float64       `json:"soilTemperature"`
	SolarRadiation     float64       `json:"solarRadiation"`
	GDD                float64       `json:"gdd,omitempty"`
	DiseaseRisk        string        `json:"diseaseRisk,omitempty"`
	Forecast           []ForecastDay `json:"forecast,omitempty"`
}

// MarketPrice is one commodity price row from the market capability.
type MarketPrice struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
	Trend    string  `json:"trend"` // up, down, stable
	Change   string  `json:"change"`
}

// GroundedReport pairs advisory prose with its grounding citations.
type GroundedReport struct {
	Text      string
	Citations []Citation
}

// TaskItem is one entry of a generated crop care schedule.
type TaskItem struct {
	Title    string `json:"title"`
	DueDate  string `json:"dueDate"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

// QuizQuestion is one multiple-choice question of a generated quiz.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// FlashCard is one study card of a generated deck.
type FlashCard struct {
	ID       string `json:"id"`
	Front    string `json:"front"`
	Back     string `json:"back"`
	Hint     string `json:"hint"`
	Category string `json:"category"`
}

// DiseaseEntry describes one disease in a crop disease report.
type DiseaseEntry struct {
	Name        string `json:"name"`
	Symptoms    string `json:"symptoms"`
	BioControl  string `json:"bioControl"`
	ChemControl string `json:"chemControl"`
	Severity    string `json:"severity"`
}

// PestEntry describes one pest in a crop disease report.
type PestEntry struct {
	Name           string `json:"name"`
	DamageSymptoms string `json:"damageSymptoms"`
	BioControl     string `json:"bioControl"`
	ChemControl    string `json:"chemControl"`
	Severity       string `json:"severity"`
}

// CropDiseaseReport is the structured disease/pest reference for a crop.
type CropDiseaseReport struct {
	CropName string         `json:"cropName"`
	Summary  string         `json:"summary"`
	Diseases []DiseaseEntry `json:"diseases"`
	Pests    []PestEntry    `json:"pests"`
}

// UserCrop is a crop the farmer currently grows, used to personalize
// prompts. The gateway never persists these; callers pass them in.
type UserCrop struct {
	Name   string
	Season string
}
