package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/internal/service"
)

// EventsHandler exposes region, venue, event and assignment endpoints.
type EventsHandler struct {
	roster      *service.RosterService
	assignments *service.AssignmentService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(roster *service.RosterService, assignments *service.AssignmentService) *EventsHandler {
	return &EventsHandler{roster: roster, assignments: assignments}
}

// CreateRegion handles POST /admin/regions.
func (h *EventsHandler) CreateRegion(c *fiber.Ctx) error {
	var req dto.RegionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	region, err := h.roster.CreateRegion(c.UserContext(), req.Name, req.Code)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": regionResponse(region)})
}

// ListRegions handles GET /regions.
func (h *EventsHandler) ListRegions(c *fiber.Ctx) error {
	includeInactive := parseBoolQuery(c, "include_inactive", false)
	regions, err := h.roster.ListRegions(c.UserContext(), includeInactive)
	if err != nil {
		return err
	}
	resp := make([]dto.RegionResponse, 0, len(regions))
	for i := range regions {
		resp = append(resp, regionResponse(&regions[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// UpdateRegion handles PUT /admin/regions/:id.
func (h *EventsHandler) UpdateRegion(c *fiber.Ctx) error {
	var req dto.RegionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	region, err := h.roster.UpdateRegion(c.UserContext(), c.Params("id"), req.Name, req.Code, req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": regionResponse(region)})
}

// CreateVenue handles POST /admin/venues.
func (h *EventsHandler) CreateVenue(c *fiber.Ctx) error {
	var req dto.VenueRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	venue, err := h.roster.CreateVenue(c.UserContext(), &domain.Venue{
		RegionID:  req.RegionID,
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": venueResponse(venue)})
}

// UpdateVenue handles PUT /admin/venues/:id.
func (h *EventsHandler) UpdateVenue(c *fiber.Ctx) error {
	venue, err := h.roster.GetVenue(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.VenueRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name != "" {
		venue.Name = req.Name
	}
	if req.RegionID != "" {
		venue.RegionID = req.RegionID
	}
	if req.Address != "" {
		venue.Address = req.Address
	}
	if req.Latitude != 0 || req.Longitude != 0 {
		venue.Latitude = req.Latitude
		venue.Longitude = req.Longitude
	}
	venue, err = h.roster.UpdateVenue(c.UserContext(), venue)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": venueResponse(venue)})
}

// ListVenues handles GET /venues.
func (h *EventsHandler) ListVenues(c *fiber.Ctx) error {
	var regionID *string
	if val := c.Query("region_id"); val != "" {
		regionID = &val
	}
	includeInactive := parseBoolQuery(c, "include_inactive", false)
	venues, err := h.roster.ListVenues(c.UserContext(), regionID, includeInactive)
	if err != nil {
		return err
	}
	resp := make([]dto.VenueResponse, 0, len(venues))
	for i := range venues {
		resp = append(resp, venueResponse(&venues[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// CreateEvent handles POST /events.
func (h *EventsHandler) CreateEvent(c *fiber.Ctx) error {
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	event, err := h.roster.CreateEvent(c.UserContext(), &domain.Event{
		VenueID:             req.VenueID,
		Name:                req.Name,
		StartsAt:            req.StartsAt,
		EndsAt:              req.EndsAt,
		CheckinOpensMinutes: req.CheckinOpensMinutes,
		LateGraceMinutes:    req.LateGraceMinutes,
		StaffTarget:         req.StaffTarget,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": eventResponse(event)})
}

// UpdateEvent handles PUT /events/:id.
func (h *EventsHandler) UpdateEvent(c *fiber.Ctx) error {
	event, err := h.roster.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name != "" {
		event.Name = req.Name
	}
	if req.VenueID != "" {
		event.VenueID = req.VenueID
	}
	if !req.StartsAt.IsZero() {
		event.StartsAt = req.StartsAt
	}
	if !req.EndsAt.IsZero() {
		event.EndsAt = req.EndsAt
	}
	if req.CheckinOpensMinutes > 0 {
		event.CheckinOpensMinutes = req.CheckinOpensMinutes
	}
	if req.LateGraceMinutes > 0 {
		event.LateGraceMinutes = req.LateGraceMinutes
	}
	if req.StaffTarget > 0 {
		event.StaffTarget = req.StaffTarget
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	updated, err := h.roster.UpdateEvent(c.UserContext(), event)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(updated)})
}

// GetEvent handles GET /events/:id.
func (h *EventsHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.roster.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event)})
}

// ListEvents handles GET /events.
func (h *EventsHandler) ListEvents(c *fiber.Ctx) error {
	filter := repository.EventFilter{}
	if val := c.Query("venue_id"); val != "" {
		filter.VenueID = &val
	}
	if val := c.Query("status"); val != "" {
		status := domain.EventStatus(val)
		filter.Status = &status
	}
	if val := c.Query("starts_from"); val != "" {
		if parsed, err := time.Parse(time.RFC3339, val); err == nil {
			filter.StartsFrom = &parsed
		}
	}
	if val := c.Query("starts_to"); val != "" {
		if parsed, err := time.Parse(time.RFC3339, val); err == nil {
			filter.StartsTo = &parsed
		}
	}
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	result, err := h.roster.ListEvents(c.UserContext(), filter)
	if err != nil {
		return err
	}
	resp := make([]dto.EventResponse, 0, len(result))
	for i := range result {
		resp = append(resp, eventResponse(&result[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// CancelEvent handles POST /events/:id/cancel.
func (h *EventsHandler) CancelEvent(c *fiber.Ctx) error {
	event, err := h.roster.CancelEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event)})
}

// Assign handles POST /events/:id/assignments.
func (h *EventsHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.VendorID == "" {
		return fiber.NewError(http.StatusBadRequest, "vendor_id required")
	}
	assignment, err := h.assignments.Assign(c.UserContext(), principal.User, c.Params("id"), req.VendorID, req.Position)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// Team handles GET /events/:id/assignments.
func (h *EventsHandler) Team(c *fiber.Ctx) error {
	team, err := h.assignments.ListTeam(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	resp := make([]dto.AssignmentResponse, 0, len(team))
	for i := range team {
		resp = append(resp, assignmentResponse(&team[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Confirm handles POST /assignments/:id/confirm.
func (h *EventsHandler) Confirm(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	assignment, err := h.assignments.Confirm(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// Decline handles POST /assignments/:id/decline.
func (h *EventsHandler) Decline(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	assignment, err := h.assignments.Decline(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// MarkNoShow handles POST /assignments/:id/no-show.
func (h *EventsHandler) MarkNoShow(c *fiber.Ctx) error {
	assignment, err := h.assignments.MarkNoShow(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// MySchedule handles GET /schedule.
func (h *EventsHandler) MySchedule(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	schedule, err := h.assignments.ListSchedule(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	resp := make([]dto.AssignmentResponse, 0, len(schedule))
	for i := range schedule {
		resp = append(resp, assignmentResponse(&schedule[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func regionResponse(region *domain.Region) dto.RegionResponse {
	return dto.RegionResponse{
		ID:       region.ID,
		Name:     region.Name,
		Code:     region.Code,
		IsActive: region.IsActive,
	}
}

func venueResponse(venue *domain.Venue) dto.VenueResponse {
	return dto.VenueResponse{
		ID:        venue.ID,
		RegionID:  venue.RegionID,
		Name:      venue.Name,
		Address:   venue.Address,
		Latitude:  venue.Latitude,
		Longitude: venue.Longitude,
		IsActive:  venue.IsActive,
	}
}

func eventResponse(event *domain.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:                  event.ID,
		VenueID:             event.VenueID,
		Name:                event.Name,
		StartsAt:            event.StartsAt,
		EndsAt:              event.EndsAt,
		CheckinOpensMinutes: event.CheckinOpensMinutes,
		LateGraceMinutes:    event.LateGraceMinutes,
		StaffTarget:         event.StaffTarget,
		Status:              event.Status,
	}
}

func assignmentResponse(assignment *domain.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:            assignment.ID,
		EventID:       assignment.EventID,
		VendorID:      assignment.VendorID,
		Position:      assignment.Position,
		Status:        assignment.Status,
		CheckedInAt:   assignment.CheckedInAt,
		CheckinTiming: assignment.CheckinTiming,
	}
}
