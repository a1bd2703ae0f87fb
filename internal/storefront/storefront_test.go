package storefront

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/cart"
	"github.com/wichananm65/fyx-store/internal/checkout"
	"github.com/wichananm65/fyx-store/internal/customer"
	"github.com/wichananm65/fyx-store/internal/favorite"
	"github.com/wichananm65/fyx-store/internal/kvstore"
	"github.com/wichananm65/fyx-store/internal/order"
	"github.com/wichananm65/fyx-store/internal/product"
	"github.com/wichananm65/fyx-store/internal/settings"
	"github.com/wichananm65/fyx-store/internal/user"
)

type testEnv struct {
	store     *kvstore.MemoryStore
	users     *user.Service
	catalog   *product.Service
	orders    *order.Service
	customers *customer.Service
	settings  *settings.Service
	manager   *Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	repo, err := product.NewStoreRepository(ctx, store, product.Seed())
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	orderRepo, err := order.NewStoreRepository(ctx, store)
	if err != nil {
		t.Fatalf("orders: %v", err)
	}
	customers, err := customer.NewService(ctx, store, customer.Seed())
	if err != nil {
		t.Fatalf("customers: %v", err)
	}
	st, err := settings.NewService(ctx, store)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	env := &testEnv{
		store:     store,
		users:     user.NewService(user.NewStoreRepository(store)),
		catalog:   product.NewService(repo),
		orders:    order.NewService(orderRepo, customers, nil, ""),
		customers: customers,
		settings:  st,
	}
	env.manager = env.newManager()
	return env
}

// newManager builds a manager over the same store, as a restarted process
// would.
func (e *testEnv) newManager() *Manager {
	return NewManager(Config{
		Store:    e.store,
		Provider: auth.NewFixedProvider("", 0),
		Users:    e.users,
		Catalog:  e.catalog,
		Orders:   e.orders,
		Settings: e.settings,
		UPIPayee: "fyx@upi",
	})
}

func loginEmail(t *testing.T, m *Manager, sid, email string) AuthView {
	t.Helper()
	ctx := context.Background()
	if _, err := m.OpenLogin(ctx, sid); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := m.ChooseMethod(ctx, sid, auth.MethodEmail); err != nil {
		t.Fatalf("choose: %v", err)
	}
	v, err := m.SubmitEmail(ctx, sid, email)
	if err != nil {
		t.Fatalf("email login: %v", err)
	}
	return v
}

func fillProfile(t *testing.T, m *Manager, sid string) {
	t.Helper()
	_, err := m.UpdateProfile(context.Background(), sid, user.ProfileUpdate{
		Name:  "Asha Rao",
		Phone: "99887 66554",
	})
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
}

func add(t *testing.T, m *Manager, sid, productID string, qty int) cart.Cart {
	t.Helper()
	c, err := m.AddToCart(context.Background(), sid, cart.AddRequest{ProductID: productID, Quantity: qty})
	if err != nil {
		t.Fatalf("add %s: %v", productID, err)
	}
	return c
}

func TestFinalCheckout_CODScenario(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()

	loginEmail(t, m, "s1", "asha@example.com")
	fillProfile(t, m, "s1")
	add(t, m, "s1", "1", 1)
	if _, err := m.SelectPayment(ctx, "s1", checkout.Payment{Method: checkout.MethodCOD}); err != nil {
		t.Fatalf("payment: %v", err)
	}

	o, err := m.FinalCheckout(ctx, "s1")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if o.Total != 928 || o.Status != order.StatusConfirmed || o.PaymentMethod != "cod" {
		t.Fatalf("unexpected order %+v", o)
	}
	if got := env.orders.List(); len(got) != 1 || got[0].ID != o.ID {
		t.Fatalf("expected exactly the new order at index 0, got %+v", got)
	}
	c, _ := m.Cart(ctx, "s1")
	if len(c) != 0 {
		t.Fatalf("cart should be empty after checkout, got %+v", c)
	}
	v, _ := m.Checkout(ctx, "s1")
	if v.Step != checkout.StepDetails || v.Payment != (checkout.Payment{}) {
		t.Fatalf("checkout state not reset: %+v", v)
	}
	// directory mirrors the emptied cart
	e, _ := env.users.Get(ctx, "asha@example.com")
	if len(e.Cart) != 0 {
		t.Fatalf("directory cart not cleared: %+v", e.Cart)
	}

	// payment state was cleared, so the next order needs a method again
	add(t, m, "s1", "2", 1)
	if _, err := m.FinalCheckout(ctx, "s1"); !errors.Is(err, checkout.ErrNoPaymentMethod) {
		t.Fatalf("expected ErrNoPaymentMethod, got %v", err)
	}
}

func TestFinalCheckout_UPIWithoutProofOrConfirmation(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()
	loginEmail(t, m, "s1", "asha@example.com")
	fillProfile(t, m, "s1")
	add(t, m, "s1", "7", 2)

	cases := []struct {
		pay  checkout.Payment
		want error
	}{
		{checkout.Payment{Method: checkout.MethodUPI}, checkout.ErrPaymentProofRequired},
		{checkout.Payment{Method: checkout.MethodUPI, ProofImage: "data:image/png;base64,AAA"}, checkout.ErrPaymentNotConfirmed},
		{checkout.Payment{Method: checkout.MethodUPI, Confirmed: true}, checkout.ErrPaymentProofRequired},
	}
	for _, tc := range cases {
		if _, err := m.SelectPayment(ctx, "s1", tc.pay); err != nil {
			t.Fatalf("select: %v", err)
		}
		if _, err := m.FinalCheckout(ctx, "s1"); !errors.Is(err, tc.want) {
			t.Fatalf("payment %+v: expected %v, got %v", tc.pay, tc.want, err)
		}
	}
	if n := len(env.orders.List()); n != 0 {
		t.Fatalf("rejected checkout created %d orders", n)
	}
	if c, _ := m.Cart(ctx, "s1"); len(c) != 1 {
		t.Fatalf("rejected checkout touched the cart: %+v", c)
	}

	_, _ = m.SelectPayment(ctx, "s1", checkout.Payment{Method: checkout.MethodUPI, ProofImage: "data:image/png;base64,AAA", UPIID: "asha@okbank", Confirmed: true})
	o, err := m.FinalCheckout(ctx, "s1")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if o.PaymentProof == "" || o.UPIID != "asha@okbank" || o.Total != 249*2+29 {
		t.Fatalf("unexpected UPI order %+v", o)
	}
}

func TestFinalCheckout_Preconditions(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()

	if _, err := m.FinalCheckout(ctx, "anon"); !errors.Is(err, auth.ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}

	loginEmail(t, m, "s1", "asha@example.com")
	_, _ = m.SelectPayment(ctx, "s1", checkout.Payment{Method: checkout.MethodCOD})
	if _, err := m.FinalCheckout(ctx, "s1"); !errors.Is(err, checkout.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	add(t, m, "s1", "3", 1)
	if _, err := m.FinalCheckout(ctx, "s1"); !errors.Is(err, checkout.ErrProfileIncomplete) {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}
	if n := len(env.orders.List()); n != 0 {
		t.Fatalf("expected no orders, got %d", n)
	}
}

func TestCheckoutNext_IncompleteProfileRoutesToEdit(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()
	loginEmail(t, m, "s1", "asha@example.com")

	v, err := m.CheckoutNext(ctx, "s1")
	if !errors.Is(err, checkout.ErrProfileIncomplete) || v.Route != RouteProfileEdit || v.Step != checkout.StepDetails {
		t.Fatalf("expected profile-edit route, got %+v err=%v", v, err)
	}
	fillProfile(t, m, "s1")
	if v, _ = m.CheckoutNext(ctx, "s1"); v.Step != checkout.StepReview {
		t.Fatalf("expected review, got %s", v.Step)
	}
	if v, _ = m.CheckoutNext(ctx, "s1"); v.Step != checkout.StepPayment {
		t.Fatalf("expected payment, got %s", v.Step)
	}
	if v, _ = m.CheckoutBack(ctx, "s1"); v.Step != checkout.StepReview {
		t.Fatalf("expected review after back, got %s", v.Step)
	}
}

func TestCheckoutView_UPILink(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()
	loginEmail(t, m, "s1", "asha@example.com")
	add(t, m, "s1", "1", 1)

	v, err := m.Checkout(ctx, "s1")
	if err != nil {
		t.Fatalf("checkout view: %v", err)
	}
	want := "upi://pay?payee=fyx%40upi&amount=928&currency=INR&note=FYX+Order"
	if v.Total != 928 || v.UPILink != want {
		t.Fatalf("unexpected view total=%v link=%q", v.Total, v.UPILink)
	}
}

func TestGuards_AnonymousCannotMutate(t *testing.T) {
	m, ctx := newTestEnv(t).manager, context.Background()

	if _, err := m.AddToCart(ctx, "anon", cart.AddRequest{ProductID: "1"}); !errors.Is(err, auth.ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if _, _, err := m.ToggleWishlist(ctx, "anon", "1"); !errors.Is(err, auth.ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	c, _ := m.Cart(ctx, "anon")
	w, _ := m.Wishlist(ctx, "anon")
	if len(c) != 0 || len(w) != 0 {
		t.Fatalf("anonymous session was mutated: cart=%v wishlist=%v", c, w)
	}
}

func TestAddToCart_ResolvesSelections(t *testing.T) {
	m := newTestEnv(t).manager
	loginEmail(t, m, "s1", "asha@example.com")
	c, err := m.AddToCart(context.Background(), "s1", cart.AddRequest{
		ProductID:       "4",
		Quantity:        0,
		SelectedOptions: map[string]string{"Size": "XL", "Color": "Purple"},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	it := c[0]
	if it.Quantity != 1 || it.SelectedOptions["Size"] != "XL" || it.SelectedOptions["Color"] != "Black" {
		t.Fatalf("unexpected item %+v", it)
	}
	if _, err := m.AddToCart(context.Background(), "s1", cart.AddRequest{ProductID: "nope"}); !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
}

func TestLogin_RestoresSavedCartAndWishlist(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()

	v := loginEmail(t, m, "s1", "Asha@Example.com")
	if v.Returning || v.State != auth.StateAuthenticated {
		t.Fatalf("first login should create the user, got %+v", v)
	}
	add(t, m, "s1", "4", 2)
	add(t, m, "s1", "1", 1)
	_, _, _ = m.ToggleWishlist(ctx, "s1", "7")
	_, _, _ = m.ToggleWishlist(ctx, "s1", "3")
	wantCart, _ := m.Cart(ctx, "s1")
	wantWish, _ := m.Wishlist(ctx, "s1")

	if _, err := m.Logout(ctx, "s1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if c, _ := m.Cart(ctx, "s1"); len(c) != 0 {
		t.Fatalf("logout should clear the cart, got %+v", c)
	}
	if _, err := env.users.Get(ctx, "asha@example.com"); err != nil {
		t.Fatalf("logout must keep the directory entry: %v", err)
	}

	v = loginEmail(t, m, "s1", "asha@example.com")
	if !v.Returning {
		t.Fatalf("second login should be returning")
	}
	gotCart, _ := m.Cart(ctx, "s1")
	gotWish, _ := m.Wishlist(ctx, "s1")
	if !reflect.DeepEqual(gotCart, wantCart) || !reflect.DeepEqual(gotWish, wantWish) {
		t.Fatalf("restored state differs:\n cart %+v\n want %+v\n wish %v want %v", gotCart, wantCart, gotWish, wantWish)
	}
	if !reflect.DeepEqual(gotWish, favorite.Wishlist{"7", "3"}) {
		t.Fatalf("wishlist order not preserved: %v", gotWish)
	}

	// a second device signing in to the same identity sees the same state
	loginEmail(t, m, "s2", "asha@example.com")
	if c, _ := m.Cart(ctx, "s2"); !reflect.DeepEqual(c, wantCart) {
		t.Fatalf("other session got %+v", c)
	}
}

func TestSession_SurvivesRestart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	loginEmail(t, env.manager, "s1", "asha@example.com")
	want := add(t, env.manager, "s1", "6", 3)

	restarted := env.newManager()
	v, err := restarted.AuthState(ctx, "s1")
	if err != nil || v.State != auth.StateAuthenticated || v.Profile == nil || v.Profile.Email != "asha@example.com" {
		t.Fatalf("session not restored: %+v err=%v", v, err)
	}
	if c, _ := restarted.Cart(ctx, "s1"); !reflect.DeepEqual(c, want) {
		t.Fatalf("cart not restored: %+v", c)
	}

	_, _ = restarted.Logout(ctx, "s1")
	again := env.newManager()
	if v, _ := again.AuthState(ctx, "s1"); v.State != auth.StateAnonymous {
		t.Fatalf("logged-out session came back as %s", v.State)
	}
}

func TestPhoneLogin_WrongCodeStaysPending(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()

	_, _ = m.OpenLogin(ctx, "s1")
	_, _ = m.ChooseMethod(ctx, "s1", auth.MethodPhone)
	if _, err := m.SubmitPhone(ctx, "s1", "  "); !errors.Is(err, auth.ErrPhoneRequired) {
		t.Fatalf("expected ErrPhoneRequired, got %v", err)
	}
	if _, err := m.SubmitPhone(ctx, "s1", "87654 32109"); err != nil {
		t.Fatalf("phone: %v", err)
	}
	v, err := m.VerifyOTP(ctx, "s1", "0000")
	if !errors.Is(err, auth.ErrInvalidOTP) || v.State != auth.StateOTPPending {
		t.Fatalf("wrong code should keep otp-pending, got %+v err=%v", v, err)
	}
	v, err = m.VerifyOTP(ctx, "s1", auth.DefaultOTP)
	if err != nil || v.State != auth.StateAuthenticated || v.Profile.Phone != "8765432109" {
		t.Fatalf("expected phone login, got %+v err=%v", v, err)
	}
}

func TestOAuthLogin_CannedIdentity(t *testing.T) {
	m, ctx := newTestEnv(t).manager, context.Background()
	_, _ = m.OpenLogin(ctx, "s1")
	v, err := m.ChooseMethod(ctx, "s1", auth.MethodOAuth)
	if err != nil {
		t.Fatalf("oauth: %v", err)
	}
	if v.State != auth.StateAuthenticated || v.Profile.Email != "google.user@gmail.com" || v.Profile.Name != "Google User" {
		t.Fatalf("unexpected oauth result %+v", v)
	}
}

func TestLogin_RoutesToCheckoutWhenCartWasFilled(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()

	// a guest cart can only exist on a session restored without its user;
	// seed one directly
	s, unlock, err := m.acquire(ctx, "s1")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	p, _ := env.catalog.GetByID("2")
	s.cart, _ = s.cart.Add(&p, 1, nil, nil)
	unlock()

	v := loginEmail(t, m, "s1", "new.buyer@example.com")
	if v.Route != RouteCheckout {
		t.Fatalf("expected checkout route, got %q", v.Route)
	}
	e, _ := env.users.Get(ctx, "new.buyer@example.com")
	if len(e.Cart) != 1 {
		t.Fatalf("new user should keep the guest cart, got %+v", e.Cart)
	}

	if v := loginEmail(t, m, "s2", "other@example.com"); v.Route != RouteHome {
		t.Fatalf("expected home route, got %q", v.Route)
	}
}

func TestCancelOrder_OnlyFromConfirmed(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()
	loginEmail(t, m, "s1", "asha@example.com")
	fillProfile(t, m, "s1")

	place := func() order.Order {
		add(t, m, "s1", "1", 1)
		_, _ = m.SelectPayment(ctx, "s1", checkout.Payment{Method: checkout.MethodCOD})
		o, err := m.FinalCheckout(ctx, "s1")
		if err != nil {
			t.Fatalf("checkout: %v", err)
		}
		return o
	}

	shipped := place()
	if _, _, err := env.orders.SetStatus(ctx, shipped.ID, order.StatusShipped); err != nil {
		t.Fatalf("ship: %v", err)
	}
	if _, err := m.CancelOrder(ctx, "s1", shipped.ID); !errors.Is(err, order.ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable, got %v", err)
	}
	if o, _ := env.orders.GetByID(shipped.ID); o.Status != order.StatusShipped {
		t.Fatalf("status changed to %s", o.Status)
	}

	fresh := place()
	o, err := m.CancelOrder(ctx, "s1", fresh.ID)
	if err != nil || o.Status != order.StatusCancelled {
		t.Fatalf("expected cancelled order, got %+v err=%v", o, err)
	}

	loginEmail(t, m, "s2", "someone.else@example.com")
	if _, err := m.CancelOrder(ctx, "s2", shipped.ID); !errors.Is(err, order.ErrNotCustomerOrder) {
		t.Fatalf("expected ErrNotCustomerOrder, got %v", err)
	}
	if got, _ := m.Orders(ctx, "s2"); len(got) != 0 {
		t.Fatalf("other customer sees %d orders", len(got))
	}
}

func TestFinalCheckout_UpdatesCustomerRollup(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()

	_, _ = m.OpenLogin(ctx, "s1")
	_, _ = m.ChooseMethod(ctx, "s1", auth.MethodPhone)
	_, _ = m.SubmitPhone(ctx, "s1", "8765432109")
	if _, err := m.VerifyOTP(ctx, "s1", auth.DefaultOTP); err != nil {
		t.Fatalf("otp: %v", err)
	}
	_, _ = m.UpdateProfile(ctx, "s1", user.ProfileUpdate{Name: "Priya Sharma"})
	add(t, m, "s1", "1", 1)
	_, _ = m.SelectPayment(ctx, "s1", checkout.Payment{Method: checkout.MethodCOD})
	if _, err := m.FinalCheckout(ctx, "s1"); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	priya, _ := env.customers.Get("3")
	if priya.Spent != 928 || priya.Orders != 1 {
		t.Fatalf("rollup not applied: %+v", priya)
	}
	recomputed, err := env.customers.Recompute(ctx, env.orders.List())
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if recomputed[2].Spent != priya.Spent || recomputed[2].Orders != priya.Orders {
		t.Fatalf("rollup disagrees with recompute: %+v vs %+v", priya, recomputed[2])
	}
}

func TestFinalCheckout_AtomicWithConcurrentAdds(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()
	loginEmail(t, m, "s1", "asha@example.com")
	fillProfile(t, m, "s1")
	add(t, m, "s1", "3", 1)
	_, _ = m.SelectPayment(ctx, "s1", checkout.Payment{Method: checkout.MethodCOD})

	const adds = 40
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.AddToCart(ctx, "s1", cart.AddRequest{ProductID: "3", Quantity: 1})
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = m.FinalCheckout(ctx, "s1")
	}()
	wg.Wait()

	// every unit ends up either in exactly one order or still in the cart
	total := 0
	for _, o := range env.orders.List() {
		total += o.Items.Count()
		if o.Total != o.Items.Total()+o.Shipping {
			t.Fatalf("order total drifted: %+v", o)
		}
	}
	c, _ := m.Cart(ctx, "s1")
	total += c.Count()
	if total != adds+1 {
		t.Fatalf("expected %d units across orders and cart, got %d", adds+1, total)
	}
}

func TestOrders_SharedPhoneDoesNotExposeAnotherCustomer(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()

	loginEmail(t, m, "s1", "asha@example.com")
	fillProfile(t, m, "s1")
	add(t, m, "s1", "1", 1)
	_, _ = m.SelectPayment(ctx, "s1", checkout.Payment{Method: checkout.MethodCOD})
	placed, err := m.FinalCheckout(ctx, "s1")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	loginEmail(t, m, "s2", "mallory@example.com")
	if _, err := m.UpdateProfile(ctx, "s2", user.ProfileUpdate{Name: "Mallory", Phone: "9988766554"}); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got, _ := m.Orders(ctx, "s2"); len(got) != 0 {
		t.Fatalf("phone match exposed %d orders", len(got))
	}
	if _, err := m.CancelOrder(ctx, "s2", placed.ID); !errors.Is(err, order.ErrNotCustomerOrder) {
		t.Fatalf("expected ErrNotCustomerOrder, got %v", err)
	}
	if o, _ := env.orders.GetByID(placed.ID); o.Status != order.StatusConfirmed {
		t.Fatalf("status changed to %s", o.Status)
	}
	if got, _ := m.Orders(ctx, "s1"); len(got) != 1 {
		t.Fatalf("owner sees %d orders", len(got))
	}
}

func TestManager_DropsCleanAnonymousSessions(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()

	for _, sid := range []string{"a", "b", "c"} {
		if _, err := m.AuthState(ctx, sid); err != nil {
			t.Fatalf("auth state: %v", err)
		}
	}
	if n := m.Live(); n != 0 {
		t.Fatalf("expected no live sessions after anonymous visits, got %d", n)
	}

	// an open login keeps its session
	if _, err := m.OpenLogin(ctx, "d"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if n := m.Live(); n != 1 {
		t.Fatalf("expected the mid-login session to stay, got %d", n)
	}
	v, err := m.AuthState(ctx, "d")
	if err != nil || v.State == auth.StateAnonymous {
		t.Fatalf("login progress lost: %+v err=%v", v, err)
	}
}

func TestManager_SweepDropsIdleSessions(t *testing.T) {
	env := newTestEnv(t)
	m, ctx := env.manager, context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	loginEmail(t, m, "s1", "asha@example.com")
	add(t, m, "s1", "1", 2)
	if n := m.Sweep(30 * time.Minute); n != 0 {
		t.Fatalf("fresh session swept")
	}

	now = now.Add(31 * time.Minute)
	loginEmail(t, m, "s2", "priya@example.com")
	if n := m.Sweep(30 * time.Minute); n != 1 {
		t.Fatalf("expected one idle session swept, got %d", n)
	}
	if n := m.Live(); n != 1 {
		t.Fatalf("expected s2 to stay, got %d live", n)
	}

	// the swept session comes back from the store on its next call
	c, err := m.Cart(ctx, "s1")
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	if len(c) != 1 || c[0].Quantity != 2 {
		t.Fatalf("cart not restored: %+v", c)
	}
	v, _ := m.AuthState(ctx, "s1")
	if v.State != auth.StateAuthenticated {
		t.Fatalf("expected authenticated after restore, got %+v", v)
	}
}
