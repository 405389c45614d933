package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tablematch/tablematch-server/internal/domain"
	"github.com/tablematch/tablematch-server/internal/service"
)

func (s *Server) registerReservationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createReservation",
		Method:      http.MethodPost,
		Path:        "/api/v1/reservations",
		Summary:     "Create reservation",
		Description: "Creates a pending reservation and sends invites to every phone number",
		Tags:        []string{"Reservations"},
	}, s.handleCreateReservation)

	huma.Register(s.api, huma.Operation{
		OperationID: "getReservation",
		Method:      http.MethodGet,
		Path:        "/api/v1/reservations/{id}",
		Summary:     "Get reservation",
		Description: "Returns a reservation with its invite roster. Phone numbers are masked unless the caller is the organizer",
		Tags:        []string{"Reservations"},
	}, s.handleGetReservation)

	huma.Register(s.api, huma.Operation{
		OperationID: "respondToInvite",
		Method:      http.MethodPost,
		Path:        "/api/v1/invites/respond",
		Summary:     "Respond to invite",
		Description: "Accepts or declines an invite using a single-use action token",
		Tags:        []string{"Invites"},
	}, s.handleRespondToInvite)

	huma.Register(s.api, huma.Operation{
		OperationID: "cancelReservation",
		Method:      http.MethodPost,
		Path:        "/api/v1/reservations/cancel",
		Summary:     "Cancel reservation",
		Description: "Cancels a reservation using the organizer's single-use cancel token",
		Tags:        []string{"Reservations"},
	}, s.handleCancelReservation)
}

// === DTOs ===

// ReservationResponse contains reservation data in API responses.
type ReservationResponse struct {
	ID                string    `json:"id" doc:"Reservation ID"`
	OrganizerID       string    `json:"organizer_id" doc:"Organizer identity"`
	RestaurantName    string    `json:"restaurant_name" doc:"Restaurant name"`
	RestaurantAddress string    `json:"restaurant_address,omitempty" doc:"Restaurant street address"`
	StartsAt          time.Time `json:"starts_at" doc:"Dinner start time (UTC)"`
	PartySize         int       `json:"party_size" doc:"Seats at the table"`
	Status            string    `json:"status" doc:"Reservation status: pending, confirmed, or canceled"`
	CreatedAt         time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt         time.Time `json:"updated_at" doc:"Last update time"`
}

// InviteResponse contains invite data in API responses.
type InviteResponse struct {
	ID          string     `json:"id" doc:"Invite ID"`
	Phone       string     `json:"phone" doc:"Invitee phone number, masked for non-organizers"`
	RSVP        string     `json:"rsvp" doc:"RSVP status: pending, accepted, or declined"`
	RespondedAt *time.Time `json:"responded_at,omitempty" doc:"When the invitee responded"`
}

// CreateReservationRequest is the request body for creating a reservation.
type CreateReservationRequest struct {
	OrganizerID       string    `json:"organizer_id" doc:"Organizer identity"`
	RestaurantName    string    `json:"restaurant_name" doc:"Restaurant name"`
	RestaurantAddress string    `json:"restaurant_address,omitempty" doc:"Restaurant street address"`
	StartsAt          time.Time `json:"starts_at" doc:"Dinner start time, must be in the future"`
	PartySize         int       `json:"party_size" doc:"Seats at the table, at least every invitee plus the organizer"`
	InviteePhones     []string  `json:"invitee_phones" doc:"Invitee phone numbers in E.164 format"`
}

// CreateReservationInput wraps the create reservation request for Huma.
type CreateReservationInput struct {
	Body CreateReservationRequest
}

// CreateReservationResponse contains the created reservation and its invites.
type CreateReservationResponse struct {
	Reservation ReservationResponse `json:"reservation" doc:"The created reservation"`
	Invites     []InviteResponse    `json:"invites" doc:"One invite per phone number"`
	CancelToken string              `json:"cancel_token" doc:"Single-use token for canceling the reservation"`
}

// CreateReservationOutput wraps the create reservation response for Huma.
type CreateReservationOutput struct {
	Body CreateReservationResponse
}

// GetReservationInput contains parameters for fetching a reservation.
type GetReservationInput struct {
	ID        string `path:"id" doc:"Reservation ID"`
	XIdentity string `header:"X-Identity" doc:"Caller identity, used to decide phone masking"`
}

// ReservationDetailsResponse contains a reservation with its invite roster.
type ReservationDetailsResponse struct {
	Reservation ReservationResponse `json:"reservation" doc:"The reservation"`
	Invites     []InviteResponse    `json:"invites" doc:"Invite roster"`
}

// ReservationDetailsOutput wraps the reservation details for Huma.
type ReservationDetailsOutput struct {
	Body ReservationDetailsResponse
}

// RespondRequest is the request body for responding to an invite.
type RespondRequest struct {
	Token    string `json:"token" doc:"Accept or decline action token"`
	Identity string `json:"identity" doc:"Responder identity"`
}

// RespondInput wraps the respond request for Huma.
type RespondInput struct {
	Body RespondRequest
}

// RespondResponse reports the outcome of an invite response.
type RespondResponse struct {
	Outcome           string `json:"outcome" doc:"What the response achieved: accepted, declined, already_handled, expired, or invalid"`
	ReservationStatus string `json:"reservation_status,omitempty" doc:"Reservation status after the response"`
	RSVP              string `json:"rsvp,omitempty" doc:"The invite's RSVP after the response"`
}

// RespondOutput wraps the respond response for Huma.
type RespondOutput struct {
	Body RespondResponse
}

// CancelRequest is the request body for canceling a reservation.
type CancelRequest struct {
	Token string `json:"token" doc:"Single-use cancel token"`
}

// CancelInput wraps the cancel request for Huma.
type CancelInput struct {
	Body CancelRequest
}

// CancelResponse reports the outcome of a cancellation.
type CancelResponse struct {
	Outcome           string `json:"outcome" doc:"What the cancellation achieved: canceled, already_handled, expired, or invalid"`
	ReservationStatus string `json:"reservation_status,omitempty" doc:"Reservation status after the cancellation"`
}

// CancelOutput wraps the cancel response for Huma.
type CancelOutput struct {
	Body CancelResponse
}

// === Handlers ===

func (s *Server) handleCreateReservation(ctx context.Context, input *CreateReservationInput) (*CreateReservationOutput, error) {
	resp, err := s.reservations.CreateReservation(ctx, service.CreateReservationRequest{
		OrganizerID:       input.Body.OrganizerID,
		RestaurantName:    input.Body.RestaurantName,
		RestaurantAddress: input.Body.RestaurantAddress,
		StartsAt:          input.Body.StartsAt,
		PartySize:         input.Body.PartySize,
		InviteePhones:     input.Body.InviteePhones,
	})
	if err != nil {
		return nil, err
	}

	return &CreateReservationOutput{
		Body: CreateReservationResponse{
			Reservation: toReservationResponse(resp.Reservation),
			Invites:     toInviteResponses(resp.Invites),
			CancelToken: resp.CancelToken,
		},
	}, nil
}

func (s *Server) handleGetReservation(ctx context.Context, input *GetReservationInput) (*ReservationDetailsOutput, error) {
	details, err := s.reservations.GetReservation(ctx, input.ID, input.XIdentity)
	if err != nil {
		return nil, err
	}

	return &ReservationDetailsOutput{
		Body: ReservationDetailsResponse{
			Reservation: toReservationResponse(details.Reservation),
			Invites:     toInviteResponses(details.Invites),
		},
	}, nil
}

func (s *Server) handleRespondToInvite(ctx context.Context, input *RespondInput) (*RespondOutput, error) {
	resp, err := s.reservations.RespondToInvite(ctx, service.RespondRequest{
		Token:    input.Body.Token,
		Identity: input.Body.Identity,
	})
	if err != nil {
		return nil, err
	}

	return &RespondOutput{
		Body: RespondResponse{
			Outcome:           string(resp.Outcome),
			ReservationStatus: string(resp.ReservationStatus),
			RSVP:              string(resp.RSVP),
		},
	}, nil
}

func (s *Server) handleCancelReservation(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	resp, err := s.reservations.CancelReservation(ctx, service.CancelRequest{
		Token: input.Body.Token,
	})
	if err != nil {
		return nil, err
	}

	return &CancelOutput{
		Body: CancelResponse{
			Outcome:           string(resp.Outcome),
			ReservationStatus: string(resp.ReservationStatus),
		},
	}, nil
}

// === Mapping ===

func toReservationResponse(res *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                res.ID,
		OrganizerID:       res.OrganizerID,
		RestaurantName:    res.RestaurantName,
		RestaurantAddress: res.RestaurantAddress,
		StartsAt:          res.StartsAt,
		PartySize:         res.PartySize,
		Status:            string(res.Status),
		CreatedAt:         res.CreatedAt,
		UpdatedAt:         res.UpdatedAt,
	}
}

func toInviteResponses(views []service.InviteView) []InviteResponse {
	invites := make([]InviteResponse, 0, len(views))
	for _, v := range views {
		invites = append(invites, InviteResponse{
			ID:          v.ID,
			Phone:       v.Phone,
			RSVP:        string(v.RSVP),
			RespondedAt: v.RespondedAt,
		})
	}
	return invites
}
