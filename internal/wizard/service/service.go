// Package service implements the wizard's step transitions over the session
// store: every submission validates its guard, computes or stores the step's
// data, and persists the whole state before the handler redirects onward.
package service

import (
	"context"
	"errors"
	"strconv"

	"garage_portal_backend/internal/catalog"
	"garage_portal_backend/internal/estimate"
	"garage_portal_backend/internal/events"
	"garage_portal_backend/internal/session"
	"garage_portal_backend/internal/vehicle"
	"garage_portal_backend/internal/wizard/transport"
	"garage_portal_backend/platform/logger"
	"garage_portal_backend/platform/phone"
)

// Guard sentinels. Handlers translate these into silent redirects to the
// earliest unmet step, never into error pages.
var (
	ErrVehicleRequired  = errors.New("no vehicle in session")
	ErrCustomerRequired = errors.New("no customer in session")
)

// Service drives the wizard state machine.
type Service struct {
	store   session.Store
	lookup  vehicle.Lookup
	calc    *estimate.Calculator
	catalog *catalog.Catalog
	bus     events.Bus
	log     *logger.Logger
}

// New creates the wizard service.
func New(store session.Store, lookup vehicle.Lookup, calc *estimate.Calculator, cat *catalog.Catalog, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:   store,
		lookup:  lookup,
		calc:    calc,
		catalog: cat,
		bus:     bus,
		log:     log,
	}
}

// Profile exposes the active pricing profile for view rendering and routing.
func (s *Service) Profile() estimate.Profile {
	return s.calc.Profile()
}

// CalculatorView renders the first step from the current session.
func (s *Service) CalculatorView(ctx context.Context, sid string) (transport.CalculatorView, error) {
	state, err := s.store.Get(ctx, sid)
	if err != nil {
		s.log.WithSessionID(sid).SessionError("get", err)
		return transport.CalculatorView{}, err
	}

	selections := state.Selections
	if selections == nil {
		selections = map[string]bool{}
	}

	return transport.CalculatorView{
		Profile:    s.calc.Profile().Name,
		Tasks:      s.catalog.Tasks(),
		Selections: selections,
		Error:      "",
	}, nil
}

// SubmitCalculator looks up the vehicle and stores the vehicle, the full
// replacement task selection, and the computed breakdown. A lookup or brand
// failure is returned to the handler untouched so the form can re-render
// with the user-facing message.
func (s *Service) SubmitCalculator(ctx context.Context, sid, plate string, selections map[string]bool) error {
	state, err := s.store.Get(ctx, sid)
	if err != nil {
		s.log.WithSessionID(sid).SessionError("get", err)
		return err
	}

	record, err := s.lookup.Lookup(ctx, plate)
	if err != nil {
		return err
	}

	state.Vehicle = record
	state.Selections = selections
	costs := s.calc.Calculate(selections, record, state.HourlyRate)
	state.Costs = &costs

	if err := s.store.Save(ctx, sid, state); err != nil {
		s.log.WithSessionID(sid).SessionError("save", err)
		return err
	}
	return nil
}

// SummaryView renders the estimate overview; requires a vehicle in session.
func (s *Service) SummaryView(ctx context.Context, sid string) (transport.SummaryView, error) {
	state, err := s.requireVehicle(ctx, sid)
	if err != nil {
		return transport.SummaryView{}, err
	}

	profile := s.calc.Profile()
	view := transport.SummaryView{
		Vehicle:       state.Vehicle,
		Costs:         state.Costs,
		PaymentOption: state.PaymentOption,
		AllowBack:     profile.AllowBack,
	}
	if profile.RateAdjustable {
		view.HourlyRate = state.HourlyRate
		if view.HourlyRate == 0 {
			view.HourlyRate = profile.HourlyRate
		}
	}
	return view, nil
}

// ChoosePayment stores the payment option chosen on the summary step.
func (s *Service) ChoosePayment(ctx context.Context, sid, option string) error {
	state, err := s.requireVehicle(ctx, sid)
	if err != nil {
		return err
	}

	state.PaymentOption = option
	if err := s.store.Save(ctx, sid, state); err != nil {
		s.log.WithSessionID(sid).SessionError("save", err)
		return err
	}
	return nil
}

// SetHourlyRate applies a per-session rate override on rate-adjustable
// profiles and recomputes the breakdown. A non-numeric rate is dropped
// without comment and the stored state is left untouched.
func (s *Service) SetHourlyRate(ctx context.Context, sid, raw string) error {
	state, err := s.requireVehicle(ctx, sid)
	if err != nil {
		return err
	}

	rate, err := strconv.Atoi(raw)
	if err != nil || rate <= 0 {
		return nil
	}

	state.HourlyRate = float64(rate)
	costs := s.calc.Calculate(state.Selections, state.Vehicle, state.HourlyRate)
	state.Costs = &costs

	if err := s.store.Save(ctx, sid, state); err != nil {
		s.log.WithSessionID(sid).SessionError("save", err)
		return err
	}
	return nil
}

// CustomerInfoView renders the customer-details step.
func (s *Service) CustomerInfoView(ctx context.Context, sid string) (transport.CustomerInfoView, error) {
	state, err := s.requireVehicle(ctx, sid)
	if err != nil {
		return transport.CustomerInfoView{}, err
	}

	return transport.CustomerInfoView{
		Vehicle:       state.Vehicle,
		Costs:         state.Costs,
		PaymentOption: state.PaymentOption,
		AllowBack:     s.calc.Profile().AllowBack,
	}, nil
}

// SubmitCustomer stores the customer details and announces the completed
// estimate on the event bus.
func (s *Service) SubmitCustomer(ctx context.Context, sid string, req transport.CustomerInfoRequest) error {
	state, err := s.requireVehicle(ctx, sid)
	if err != nil {
		return err
	}

	state.Customer = &session.CustomerData{
		Name:      req.Name,
		Address:   req.Address,
		Email:     req.Email,
		Phone:     phone.NormalizeE164(req.Phone),
		IBAN:      req.IBAN,
		Signature: req.Signature,
	}

	if err := s.store.Save(ctx, sid, state); err != nil {
		s.log.WithSessionID(sid).SessionError("save", err)
		return err
	}

	s.publishConfirmed(ctx, sid, state)
	return nil
}

// ConfirmationView renders the final recap; requires the customer step.
func (s *Service) ConfirmationView(ctx context.Context, sid string) (transport.ConfirmationView, error) {
	state, err := s.store.Get(ctx, sid)
	if err != nil {
		s.log.WithSessionID(sid).SessionError("get", err)
		return transport.ConfirmationView{}, err
	}
	if !state.HasCustomer() {
		return transport.ConfirmationView{}, ErrCustomerRequired
	}

	return transport.ConfirmationView{
		Customer:      state.Customer,
		Vehicle:       state.Vehicle,
		SelectedTasks: s.selectedTasks(state.Selections),
		PaymentOption: state.PaymentOption,
		Costs:         state.Costs,
	}, nil
}

func (s *Service) requireVehicle(ctx context.Context, sid string) (*session.State, error) {
	state, err := s.store.Get(ctx, sid)
	if err != nil {
		s.log.WithSessionID(sid).SessionError("get", err)
		return nil, err
	}
	if !state.HasVehicle() {
		return nil, ErrVehicleRequired
	}
	return state, nil
}

func (s *Service) selectedTasks(selections map[string]bool) []catalog.Task {
	var selected []catalog.Task
	for _, task := range s.catalog.Tasks() {
		if selections[task.ID] {
			selected = append(selected, task)
		}
	}
	return selected
}

func (s *Service) publishConfirmed(ctx context.Context, sid string, state *session.State) {
	event := events.EstimateConfirmed{
		BaseEvent:     events.NewBaseEvent(),
		SessionID:     sid,
		CustomerName:  state.Customer.Name,
		CustomerEmail: state.Customer.Email,
		PaymentOption: state.PaymentOption,
	}
	if state.Vehicle != nil {
		event.LicensePlate = state.Vehicle.LicensePlate
		event.VehicleModel = state.Vehicle.Model
	}
	if state.Costs != nil {
		event.AnnualInclVAT = state.Costs.AnnualInclVAT
		event.MonthlyInclVAT = state.Costs.MonthlyInclVAT
	}
	for _, task := range s.selectedTasks(state.Selections) {
		event.TaskLabels = append(event.TaskLabels, task.Label)
	}

	s.bus.Publish(ctx, event)
}
