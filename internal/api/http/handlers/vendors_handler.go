package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/internal/service"
)

// VendorsHandler exposes vendor account and onboarding endpoints.
type VendorsHandler struct {
	onboarding *service.OnboardingService
	roster     *service.RosterService
}

// NewVendorsHandler constructs handler.
func NewVendorsHandler(onboarding *service.OnboardingService, roster *service.RosterService) *VendorsHandler {
	return &VendorsHandler{onboarding: onboarding, roster: roster}
}

// Create handles POST /admin/vendors.
func (h *VendorsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.VendorCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	created, err := h.onboarding.CreateVendor(c.UserContext(), principal.User, service.CreateVendorInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.VendorCreateResponse{
		User:         userResponse(created.User),
		TempPassword: created.TempPassword,
	}})
}

// MyProfile handles GET /profile.
func (h *VendorsHandler) MyProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	profile, err := h.onboarding.GetProfile(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profileResponse(profile)})
}

// UpdateProfile handles PUT /profile.
func (h *VendorsHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.onboarding.UpdateProfile(c.UserContext(), principal.User, service.ProfileInput{
		Phone:     req.Phone,
		Address:   req.Address,
		RegionID:  req.RegionID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		HireDate:  req.HireDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profileResponse(profile)})
}

// UploadPhoto handles POST /profile/photo as a multipart upload.
func (h *VendorsHandler) UploadPhoto(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "photo file required")
	}
	data, err := readMultipartFile(fileHeader)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable photo file")
	}

	profile, err := h.onboarding.UploadPhoto(c.UserContext(), principal.User, fileHeader.Filename, data)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profileResponse(profile)})
}

// SetBackgroundCheck handles PUT /admin/vendors/:id/background-check.
func (h *VendorsHandler) SetBackgroundCheck(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.BackgroundCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.onboarding.SetBackgroundCheck(c.UserContext(), principal.User, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profileResponse(profile)})
}

// Activate handles POST /admin/vendors/:id/activate.
func (h *VendorsHandler) Activate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	user, err := h.onboarding.ActivateVendor(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Suspend handles POST /admin/vendors/:id/suspend.
func (h *VendorsHandler) Suspend(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	user, err := h.onboarding.SuspendVendor(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// ListUsers handles GET /admin/users with role and status filters.
func (h *VendorsHandler) ListUsers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	filter := repository.UserFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if val := c.Query("role"); val != "" {
		role := domain.Role(val)
		filter.Role = &role
	}
	if val := c.Query("status"); val != "" {
		status := domain.UserStatus(val)
		filter.Status = &status
	}

	users, err := h.onboarding.ListUsers(c.UserContext(), principal.User, filter)
	if err != nil {
		return err
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Nearby handles GET /venues/:id/vendors, the distance-ordered directory.
func (h *VendorsHandler) Nearby(c *fiber.Ctx) error {
	listings, err := h.roster.NearbyVendors(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vendorListings(listings)})
}

// ByRegion handles GET /regions/:id/vendors.
func (h *VendorsHandler) ByRegion(c *fiber.Ctx) error {
	listings, err := h.roster.VendorsInRegion(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vendorListings(listings)})
}

func vendorListings(listings []service.VendorListing) []dto.VendorListingResponse {
	resp := make([]dto.VendorListingResponse, 0, len(listings))
	for i := range listings {
		resp = append(resp, dto.VendorListingResponse{
			User:       userResponse(&listings[i].User),
			Profile:    profileResponse(&listings[i].Profile),
			DistanceKm: listings[i].DistanceKm,
		})
	}
	return resp
}

func profileResponse(profile *domain.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:          profile.UserID,
		Phone:           profile.Phone,
		Address:         profile.Address,
		RegionID:        profile.RegionID,
		Latitude:        profile.Latitude,
		Longitude:       profile.Longitude,
		PhotoKey:        profile.PhotoKey,
		HireDate:        profile.HireDate,
		BackgroundCheck: profile.BackgroundCheck,
	}
}
