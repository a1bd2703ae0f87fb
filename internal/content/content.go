package content

import "errors"

var (
	ErrNotFound       = errors.New("content not found")
	ErrTitleMissing   = errors.New("title is required")
	ErrQuestionFields = errors.New("question and answer are required")
	ErrSubjectMissing = errors.New("subject is required")
	ErrInvalidEmail   = errors.New("invalid email")
)

const (
	PostPublished = "Published"
	PostDraft     = "Draft"

	TicketOpen     = "Open"
	TicketResolved = "Resolved"

	PriorityMedium = "Medium"

	Subscribed   = "Subscribed"
	Unsubscribed = "Unsubscribed"

	DefaultAuthor = "Admin"
)

type BlogPost struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Ticket is a support request raised by a customer.
type Ticket struct {
	ID       string `json:"id"`
	User     string `json:"user"`
	Subject  string `json:"subject"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Date     string `json:"date"`
}

// Subscriber is a newsletter address; the email is its identity.
type Subscriber struct {
	Email  string `json:"email"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

func SeedBlog() []BlogPost {
	return []BlogPost{
		{ID: "1", Title: "Summer Style Guide 2024", Author: "Admin", Date: "May 15, 2024", Status: PostPublished},
		{ID: "2", Title: "The Art of Gift Giving", Author: "Sarah J.", Date: "June 2, 2024", Status: PostDraft},
	}
}

func SeedFAQs() []FAQ {
	return []FAQ{
		{ID: "1", Question: "How do I track my order?", Answer: "You can track your order from the 'My Orders' section in your profile."},
		{ID: "2", Question: "What is the return policy?", Answer: "We accept returns within 7 days of delivery for damaged items."},
	}
}

func SeedTickets() []Ticket {
	return []Ticket{
		{ID: "T-2024-001", User: "Rahul Verma", Subject: "Order delivery delayed", Status: TicketOpen, Priority: "High", Date: "2 hrs ago"},
		{ID: "T-2024-002", User: "Shourya Singh", Subject: "Inquiry about bulk order", Status: TicketResolved, Priority: PriorityMedium, Date: "1 day ago"},
	}
}

func SeedSubscribers() []Subscriber {
	return []Subscriber{
		{Email: "john@example.com", Date: "2024-01-15", Status: Subscribed},
		{Email: "sarah@test.com", Date: "2024-02-20", Status: Subscribed},
		{Email: "mike@demo.com", Date: "2024-03-10", Status: Unsubscribed},
	}
}
