package api

import (
	"context"  // Section loaders
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"storefront/internal/backend"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/view"
)

// dashboardPage is the authenticated page model
type dashboardPage struct {
	User         *domain.User
	IsAdmin      bool
	Tabs         []view.Tab
	ActiveTab    string
	Notices      []domain.Notice
	Products     []view.ProductCard
	MyTopUps     []view.TopUpRow
	Purchases    []domain.Purchase
	Tickets      []domain.SupportTicket
	Posts        []domain.BlogPost
	Pending      []view.TopUpRow // Admin only
	Processed    []view.TopUpRow // Admin only
	TopUpDraft   domain.Draft
	ProductDraft domain.Draft
	TicketDraft  domain.Draft
	PostDraft    domain.Draft
}

// DashboardHandler renders every section the user's capabilities allow.
// Each section comes from the view cache unless a mutation invalidated it.
func DashboardHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		s := middleware.CurrentSession(c)
		uid := s.User.ID
		tabs := view.Tabs(s.User)

		page := dashboardPage{
			User:         s.User,
			IsAdmin:      view.HasTab(tabs, "admin"),
			Tabs:         tabs,
			ActiveTab:    view.DefaultTab,
			TopUpDraft:   s.Draft(formTopUp),
			ProductDraft: s.Draft(formProduct),
			TicketDraft:  s.Draft(formTicket),
			PostDraft:    s.Draft(formPost),
		}
		queued := s.TakeNotices()

		var errs []error
		keep := func(err error) {
			if err != nil {
				errs = append(errs, err)
			}
		}

		products, err := cached(ctx, env, productsKey, env.Backend.ListProducts)
		keep(err)
		page.Products = view.Cards(s.User, products)

		mine, err := cached(ctx, env, userTopUpsKey(uid), func(ctx context.Context) ([]domain.TopUpRequest, error) {
			return env.Backend.ListMyTopUps(ctx, s)
		})
		keep(err)
		page.MyTopUps = view.Rows(mine)

		page.Purchases, err = cached(ctx, env, purchasesKey(uid), func(ctx context.Context) ([]domain.Purchase, error) {
			return env.Backend.ListPurchases(ctx, s)
		})
		keep(err)

		page.Tickets, err = cached(ctx, env, ticketsKey(uid), func(ctx context.Context) ([]domain.SupportTicket, error) {
			return env.Backend.ListTickets(ctx, s)
		})
		keep(err)

		page.Posts, err = cached(ctx, env, blogKey, env.Backend.ListBlogPosts)
		keep(err)

		if page.IsAdmin {
			all, err := cached(ctx, env, adminTopUpsKey, func(ctx context.Context) ([]domain.TopUpRequest, error) {
				return env.Backend.ListAllTopUps(ctx, s)
			})
			keep(err)
			page.Pending = view.Rows(view.PendingOnly(all))
			page.Processed = view.Rows(view.Processed(all))
		}

		seen := make(map[string]bool)
		for _, err := range errs {
			if errors.Is(err, backend.ErrUnauthorized) {
				expire(c, env, s)
				return
			}
			text := view.ErrorText(err)
			if !seen[text] {
				seen[text] = true
				page.Notices = append(page.Notices, domain.Notice{Kind: domain.NoticeError, Text: text})
			}
		}
		page.Notices = append(queued, page.Notices...)

		// Shown once; persist the emptied queue
		if len(queued) > 0 {
			_ = env.Sessions.Save(ctx, s)
		}
		c.HTML(http.StatusOK, "dashboard.tmpl", page)
	}
}
