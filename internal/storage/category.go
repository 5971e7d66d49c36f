package storage

// Category is a closed set. An unknown category is a validation error,
// never a silent lookup miss.
type Category string

const (
	CategoryAssignment  Category = "assignment"
	CategoryDeadline    Category = "deadline"
	CategoryLiveSession Category = "liveSession"
	CategoryExam        Category = "exam"
	CategoryStudyGroup  Category = "studyGroup"
	CategoryReminder    Category = "reminder"
)

// CategoryMeta is the display metadata the rendering layer binds to.
type CategoryMeta struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var categoryMeta = map[Category]CategoryMeta{
	CategoryAssignment:  {Label: "Assignment", Color: "#3b82f6", Icon: "file-text"},
	CategoryDeadline:    {Label: "Deadline", Color: "#ef4444", Icon: "alert-circle"},
	CategoryLiveSession: {Label: "Live Session", Color: "#8b5cf6", Icon: "video"},
	CategoryExam:        {Label: "Exam", Color: "#f59e0b", Icon: "edit-3"},
	CategoryStudyGroup:  {Label: "Study Group", Color: "#10b981", Icon: "users"},
	CategoryReminder:    {Label: "Reminder", Color: "#6b7280", Icon: "bell"},
}

func (c Category) Valid() bool {
	_, ok := categoryMeta[c]
	return ok
}

func (c Category) Meta() (CategoryMeta, bool) {
	m, ok := categoryMeta[c]
	return m, ok
}

// Categories returns the full vocabulary in a fixed order.
func Categories() []Category {
	return []Category{
		CategoryAssignment,
		CategoryDeadline,
		CategoryLiveSession,
		CategoryExam,
		CategoryStudyGroup,
		CategoryReminder,
	}
}
