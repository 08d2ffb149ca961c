package tutee

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tracko-hub/tracko/internal/domain/lesson"
	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

// Record is the flat, serializable form of a Tutee used by storage and caches.
type Record struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	Level     string         `json:"level"`
	Tags      []string       `json:"tags"`
	Lessons   []LessonRecord `json:"lessons"`
	Payment   PaymentRecord  `json:"payment"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// LessonRecord is the flat form of a lesson.
type LessonRecord struct {
	Subject string `json:"subject"`
	Day     string `json:"day"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// PaymentRecord is the flat form of a payment. PayByDate is dd-MM-yyyy or "-".
type PaymentRecord struct {
	Value     string   `json:"value"`
	PayByDate string   `json:"pay_by_date"`
	History   []string `json:"history"`
}

// ToRecord flattens t.
func (t *Tutee) ToRecord() Record {
	lessons := make([]LessonRecord, len(t.Lessons))
	for i, l := range t.Lessons {
		lessons[i] = LessonRecord{
			Subject: l.Subject().String(),
			Day:     l.Time().Day().String(),
			Start:   l.Time().Start().String(),
			End:     l.Time().End().String(),
		}
	}
	return Record{
		ID:      t.ID,
		Name:    t.Name.String(),
		Phone:   t.Phone.String(),
		Address: t.Address.String(),
		Level:   t.Level.String(),
		Tags:    t.Tags.Strings(),
		Lessons: lessons,
		Payment: PaymentRecord{
			Value:     t.Payment.Value(),
			PayByDate: t.Payment.PayByDateString(),
			History:   t.Payment.History(),
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func corrupt(field string, err error) error {
	return shared.WrapError("tutee", "FromRecord", shared.ErrPrecondition, "stored "+field+" is invalid", err)
}

// FromRecord rebuilds a Tutee. The payment's overdue status is evaluated
// against today. Stored lessons are not re-checked against the current
// minimum duration since they were valid when saved.
func FromRecord(r Record, today time.Time) (*Tutee, error) {
	name, err := NewName(r.Name)
	if err != nil {
		return nil, corrupt("name", err)
	}
	phone, err := NewPhone(r.Phone)
	if err != nil {
		return nil, corrupt("phone", err)
	}
	address, err := NewAddress(r.Address)
	if err != nil {
		return nil, corrupt("address", err)
	}
	level, err := NewLevel(r.Level)
	if err != nil {
		return nil, corrupt("level", err)
	}

	tags := NewTagSet()
	for _, raw := range r.Tags {
		tag, err := NewTag(raw)
		if err != nil {
			return nil, corrupt("tag", err)
		}
		tags.Add(tag)
	}

	lessons := make([]lesson.Lesson, 0, len(r.Lessons))
	for _, lr := range r.Lessons {
		l, err := lr.toLesson()
		if err != nil {
			return nil, corrupt("lesson", err)
		}
		lessons = append(lessons, l)
	}

	payment, err := r.Payment.toPayment(today)
	if err != nil {
		return nil, corrupt("payment", err)
	}

	return &Tutee{
		ID:        r.ID,
		Name:      name,
		Phone:     phone,
		Address:   address,
		Level:     level,
		Tags:      tags,
		Lessons:   lessons,
		Payment:   payment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func (lr LessonRecord) toLesson() (lesson.Lesson, error) {
	subject, err := lesson.NewSubject(lr.Subject)
	if err != nil {
		return lesson.Lesson{}, err
	}
	start, err := timeutil.ParseTimeOfDay(lr.Start)
	if err != nil {
		return lesson.Lesson{}, err
	}
	end, err := timeutil.ParseTimeOfDay(lr.End)
	if err != nil {
		return lesson.Lesson{}, err
	}
	slot, err := lesson.NewTime(lesson.DayOfWeek(lr.Day), start, end, 0)
	if err != nil {
		return lesson.Lesson{}, err
	}
	return lesson.New(subject, slot)
}

func (pr PaymentRecord) toPayment(today time.Time) (*Payment, error) {
	var due time.Time
	if pr.PayByDate != NoPayByDate {
		d, err := timeutil.ParseDate(pr.PayByDate)
		if err != nil {
			return nil, err
		}
		due = d
	}
	p, err := NewPayment(pr.Value, due, today)
	if err != nil {
		return nil, err
	}
	if !IsValidPaymentHistory(pr.History) {
		return nil, fmt.Errorf("history %v: %s", pr.History, PaymentHistoryConstraints)
	}
	p.CopyPaymentHistory(pr.History)
	return p, nil
}
