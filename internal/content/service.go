package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/collection"
	"github.com/wichananm65/fyx-store/internal/kvstore"
)

// Service owns the blog, FAQ, support ticket and newsletter collections.
type Service struct {
	blog        *collection.Collection[BlogPost]
	faqs        *collection.Collection[FAQ]
	tickets     *collection.Collection[Ticket]
	subscribers *collection.Collection[Subscriber]
	now         func() time.Time
}

func NewService(ctx context.Context, s kvstore.Store) (*Service, error) {
	svc := &Service{
		blog:        collection.New(s, kvstore.KeyBlog, func(p BlogPost) string { return p.ID }),
		faqs:        collection.New(s, kvstore.KeyFAQs, func(f FAQ) string { return f.ID }),
		tickets:     collection.New(s, kvstore.KeyTickets, func(t Ticket) string { return t.ID }),
		subscribers: collection.New(s, kvstore.KeySubscribers, func(s Subscriber) string { return s.Email }),
		now:         time.Now,
	}
	if err := svc.blog.Load(ctx, SeedBlog()); err != nil {
		return nil, err
	}
	if err := svc.faqs.Load(ctx, SeedFAQs()); err != nil {
		return nil, err
	}
	if err := svc.tickets.Load(ctx, SeedTickets()); err != nil {
		return nil, err
	}
	if err := svc.subscribers.Load(ctx, SeedSubscribers()); err != nil {
		return nil, err
	}
	return svc, nil
}

func notFound(err error) error {
	if errors.Is(err, collection.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) Posts() []BlogPost { return s.blog.List() }

// PublishPost prepends a post. Author defaults to Admin and the post is
// published immediately.
func (s *Service) PublishPost(ctx context.Context, p BlogPost) (BlogPost, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return BlogPost{}, ErrTitleMissing
	}
	if strings.TrimSpace(p.Author) == "" {
		p.Author = DefaultAuthor
	}
	p.ID = uuid.NewString()
	p.Date = s.now().Format("Jan 2, 2006")
	p.Status = PostPublished
	return s.blog.Prepend(ctx, p)
}

func (s *Service) DeletePost(ctx context.Context, id string) error {
	return notFound(s.blog.Delete(ctx, id))
}

func (s *Service) FAQs() []FAQ { return s.faqs.List() }

// AddFAQ appends, so FAQs keep the order they were written in.
func (s *Service) AddFAQ(ctx context.Context, f FAQ) (FAQ, error) {
	f.Question = strings.TrimSpace(f.Question)
	f.Answer = strings.TrimSpace(f.Answer)
	if f.Question == "" || f.Answer == "" {
		return FAQ{}, ErrQuestionFields
	}
	f.ID = uuid.NewString()
	return s.faqs.Append(ctx, f)
}

func (s *Service) DeleteFAQ(ctx context.Context, id string) error {
	return notFound(s.faqs.Delete(ctx, id))
}

func (s *Service) Tickets() []Ticket { return s.tickets.List() }

// OpenTicket files a support request for user. Newest tickets come first.
func (s *Service) OpenTicket(ctx context.Context, user, subject, priority string) (Ticket, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return Ticket{}, ErrSubjectMissing
	}
	if priority == "" {
		priority = PriorityMedium
	}
	now := s.now()
	t := Ticket{
		ID:       fmt.Sprintf("T-%d-%s", now.Year(), strings.ToUpper(uuid.NewString()[:6])),
		User:     user,
		Subject:  subject,
		Status:   TicketOpen,
		Priority: priority,
		Date:     now.Format("Jan 2, 2006 15:04"),
	}
	return s.tickets.Prepend(ctx, t)
}

func (s *Service) SetTicketStatus(ctx context.Context, id, status string) (Ticket, error) {
	out, err := s.tickets.Update(ctx, id, func(t *Ticket) error {
		t.Status = status
		return nil
	})
	return out, notFound(err)
}

func (s *Service) Subscribers() []Subscriber { return s.subscribers.List() }

// Subscribe adds email to the newsletter or re-activates it.
func (s *Service) Subscribe(ctx context.Context, email string) (Subscriber, error) {
	addr, ok := auth.PlausibleEmail(email)
	if !ok {
		return Subscriber{}, ErrInvalidEmail
	}
	out, err := s.subscribers.Update(ctx, addr, func(sub *Subscriber) error {
		sub.Status = Subscribed
		return nil
	})
	if !errors.Is(err, collection.ErrNotFound) {
		return out, err
	}
	return s.subscribers.Append(ctx, Subscriber{Email: addr, Date: s.now().Format("2006-01-02"), Status: Subscribed})
}

func (s *Service) Unsubscribe(ctx context.Context, email string) (Subscriber, error) {
	out, err := s.subscribers.Update(ctx, strings.ToLower(strings.TrimSpace(email)), func(sub *Subscriber) error {
		sub.Status = Unsubscribed
		return nil
	})
	return out, notFound(err)
}

// ActiveSubscribers is the audience of a newsletter campaign.
func (s *Service) ActiveSubscribers() []Subscriber {
	out := []Subscriber{}
	for _, sub := range s.subscribers.List() {
		if sub.Status == Subscribed {
			out = append(out, sub)
		}
	}
	return out
}
