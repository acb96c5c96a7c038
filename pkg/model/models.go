package model

// Gender is the profile gender selection
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Prefer not to say"
)

// ActivityLevel represents the five self-reported activity tiers
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "Sedentary"
	ActivityLightlyActive    ActivityLevel = "Lightly Active"
	ActivityModeratelyActive ActivityLevel = "Moderately Active"
	ActivityActive           ActivityLevel = "Active"
	ActivityVeryActive       ActivityLevel = "Very Active"
)

// PrimaryGoal is the user's overall objective
type PrimaryGoal string

const (
	GoalLoseWeight     PrimaryGoal = "Lose Weight"
	GoalMaintainWeight PrimaryGoal = "Maintain Weight"
	GoalGainMuscle     PrimaryGoal = "Gain Muscle"
)

// UnitSystem controls display formatting only; stored values are always
// imperial (lbs, inches, fl oz)
type UnitSystem string

const (
	UnitImperial UnitSystem = "imperial"
	UnitMetric   UnitSystem = "metric"
)

// MealType buckets a logged meal by time of day
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnacks    MealType = "Snacks"
)

// MealTypes lists the buckets in display order
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}

// Page identifies the screen the UI layer is currently showing. It is part
// of the persisted per-user state so the app reopens where it left off.
type Page string

const (
	PageDashboard     Page = "DASHBOARD"
	PageDiary         Page = "DIARY"
	PageReports       Page = "REPORTS"
	PageSettings      Page = "SETTINGS"
	PageLogMeal       Page = "LOG_MEAL"
	PageLogActivity   Page = "LOG_ACTIVITY"
	PageMealDetail    Page = "MEAL_DETAIL"
	PageWeightHistory Page = "WEIGHT_HISTORY"
	PageWaterHistory  Page = "WATER_HISTORY"
)

// ThemePreference is the per-user theme choice
type ThemePreference string

const (
	ThemeLight  ThemePreference = "light"
	ThemeDark   ThemePreference = "dark"
	ThemeSystem ThemePreference = "system"
)

// Profile holds the identity and body attributes of one user. The ID is
// assigned at registration and never changes.
type Profile struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	Avatar        string        `json:"avatar"`
	Gender        Gender        `json:"gender"`
	HeightInches  float64       `json:"height"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	PrimaryGoal   PrimaryGoal   `json:"primaryGoal"`
	UnitSystem    UnitSystem    `json:"unitSystem"`
}

// MacroGoals are daily macro targets in grams. The calorie goal is always
// derived as protein*4 + carbs*4 + fats*9 and is never stored.
type MacroGoals struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

// Calories returns the calorie goal implied by the macro targets.
func (g MacroGoals) Calories() float64 {
	return float64(g.Protein)*4 + float64(g.Carbs)*4 + float64(g.Fats)*9
}

// Meal is a logged meal. Meals have no independent identity; they are
// addressed by their position in the owning user's list.
type Meal struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fats        float64  `json:"fats"`
	Fiber       *float64 `json:"fiber,omitempty"`
	Sugar       *float64 `json:"sugar,omitempty"`
	SodiumMg    *float64 `json:"sodium,omitempty"`
	Type        MealType `json:"type"`
	Date        string   `json:"date"` // YYYY-MM-DD
}

// Activity is a logged exercise session. CaloriesBurned is computed from
// the MET formula at log time and never recomputed.
type Activity struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	DurationMinutes int     `json:"duration"`
	CaloriesBurned  float64 `json:"caloriesBurned"`
	Date            string  `json:"date"` // YYYY-MM-DD
}

// CustomActivity is a user-defined activity with its MET intensity value
type CustomActivity struct {
	Type  string  `json:"type"`
	Emoji string  `json:"emoji"`
	MET   float64 `json:"met"`
}

// WeightEntry records the user's weight on one calendar day. At most one
// entry per date exists in a user's history.
type WeightEntry struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	WeightLbs float64 `json:"weight"`
}

// FoodSearchResult is a denormalized nutrition snapshot used for search
// results, favorites, and recents.
type FoodSearchResult struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// MealAnalysis is the result of AI photo analysis: a meal plus an optional
// portion suggestion, before a log date is attached.
type MealAnalysis struct {
	Name              string   `json:"name"`
	Calories          float64  `json:"calories"`
	Protein           float64  `json:"protein"`
	Carbs             float64  `json:"carbs"`
	Fats              float64  `json:"fats"`
	Fiber             *float64 `json:"fiber,omitempty"`
	Sugar             *float64 `json:"sugar,omitempty"`
	SodiumMg          *float64 `json:"sodium,omitempty"`
	PortionSuggestion string   `json:"portionSuggestion,omitempty"`
	Type              MealType `json:"type"`
}

// PreppedMeal is a reusable recipe with precomputed per-serving macros.
// Unlike meals and activities it carries a durable identifier.
type PreppedMeal struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Servings           int                `json:"servings"`
	Ingredients        []FoodSearchResult `json:"ingredients"`
	CaloriesPerServing float64            `json:"caloriesPerServing"`
	ProteinPerServing  float64            `json:"proteinPerServing"`
	CarbsPerServing    float64            `json:"carbsPerServing"`
	FatsPerServing     float64            `json:"fatsPerServing"`
}

// ReminderType identifies one of the five fixed reminder slots
type ReminderType string

const (
	ReminderBreakfast ReminderType = "Breakfast"
	ReminderLunch     ReminderType = "Lunch"
	ReminderDinner    ReminderType = "Dinner"
	ReminderSnacks    ReminderType = "Snacks"
	ReminderWater     ReminderType = "Water"
)

// ReminderTypes lists the slots in display order
var ReminderTypes = []ReminderType{
	ReminderBreakfast, ReminderLunch, ReminderDinner, ReminderSnacks, ReminderWater,
}

// Reminder is the configuration of one reminder slot
type Reminder struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"` // "HH:MM" local, zero-padded
}

// ReminderSettings maps each slot to its configuration. Exactly one
// configuration exists per slot.
type ReminderSettings map[ReminderType]Reminder

// DefaultReminders returns the registration-time reminder configuration:
// every slot disabled at its conventional time.
func DefaultReminders() ReminderSettings {
	return ReminderSettings{
		ReminderBreakfast: {Enabled: false, Time: "08:00"},
		ReminderLunch:     {Enabled: false, Time: "12:30"},
		ReminderDinner:    {Enabled: false, Time: "18:30"},
		ReminderSnacks:    {Enabled: false, Time: "15:00"},
		ReminderWater:     {Enabled: false, Time: "10:00"},
	}
}

// UserData is the whole persisted aggregate for one user. It is replaced
// wholesale on every update and written through to durable storage.
type UserData struct {
	Profile            Profile            `json:"profile"`
	LoggedMeals        []Meal             `json:"loggedMeals"`
	LoggedActivities   []Activity         `json:"loggedActivities"`
	MacroGoals         MacroGoals         `json:"macroGoals"`
	WeightHistory      []WeightEntry      `json:"weightHistory"`
	GoalWeightLbs      float64            `json:"goalWeight"`
	WaterIntakeHistory map[string]float64 `json:"waterIntakeHistory"` // date -> fl oz
	WaterGoal          float64            `json:"waterGoal"`
	StepsHistory       map[string]int     `json:"stepsHistory"` // date -> steps
	StepsGoal          int                `json:"stepsGoal"`
	DayStreak          int                `json:"dayStreak"`
	FavoriteFoods      []FoodSearchResult `json:"favoriteFoods"`
	PreppedMeals       []PreppedMeal      `json:"preppedMeals"`
	Page               Page               `json:"page"`
	ThemePreference    ThemePreference    `json:"themePreference"`
	CustomActivities   []CustomActivity   `json:"customActivities"`
	RecentFoods        []FoodSearchResult `json:"recentFoods"`
	Reminders          ReminderSettings   `json:"reminders"`
}

// CurrentWeightLbs returns the most recent weight entry, or 0 when the
// history is empty.
func (u UserData) CurrentWeightLbs() float64 {
	if len(u.WeightHistory) == 0 {
		return 0
	}
	return u.WeightHistory[len(u.WeightHistory)-1].WeightLbs
}

// Registry is the full persisted user registry: one UserData per user id.
type Registry map[string]UserData
