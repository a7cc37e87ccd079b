package handler

import (
	"time"

	"minishop/internal/domain/entity"
	"minishop/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Response view models. These keep password hashes and other internals
// out of the wire format.

type userView struct {
	ID         uuid.UUID     `json:"id"`
	Username   string        `json:"username"`
	Email      string        `json:"email"`
	IsVerified bool          `json:"is_verified"`
	JoinedAt   time.Time     `json:"joined_at"`
	Business   *businessView `json:"business,omitempty"`
}

type businessView struct {
	ID           uuid.UUID  `json:"id"`
	BusinessName string     `json:"business_name"`
	City         string     `json:"city"`
	Region       string     `json:"region"`
	Country      string     `json:"country"`
	Description  string     `json:"description"`
	LogoURL      string     `json:"logo_url"`
	OwnerID      uuid.UUID  `json:"owner_id"`
	Owner        *ownerView `json:"owner,omitempty"`
}

// ownerView is the seller summary attached to product responses. It is a
// deliberately small slice of the user so no account internals leak.
type ownerView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type productView struct {
	ID                 uuid.UUID     `json:"id"`
	Name               string        `json:"name"`
	Category           string        `json:"category"`
	Description        string        `json:"description"`
	OriginalPrice      float64       `json:"original_price"`
	NewPrice           float64       `json:"new_price"`
	PercentageDiscount int           `json:"percentage_discount"`
	OfferExpiresAt     time.Time     `json:"offer_expires_at"`
	ImageURL           string        `json:"image_url"`
	PublishedAt        time.Time     `json:"published_at"`
	Business           *businessView `json:"business,omitempty"`
}

func toUserView(user *entity.User, store service.ImageStore) *userView {
	if user == nil {
		return nil
	}

	return &userView{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		IsVerified: user.IsVerified,
		JoinedAt:   user.JoinedAt,
		Business:   toBusinessView(user.Business, store),
	}
}

func toBusinessView(business *entity.Business, store service.ImageStore) *businessView {
	if business == nil {
		return nil
	}

	view := &businessView{
		ID:           business.ID,
		BusinessName: business.BusinessName,
		City:         business.City,
		Region:       business.Region,
		Country:      business.Country,
		Description:  business.Description,
		LogoURL:      store.URL(business.Logo),
		OwnerID:      business.OwnerID,
	}
	if business.Owner != nil {
		view.Owner = &ownerView{
			ID:       business.Owner.ID,
			Username: business.Owner.Username,
		}
	}

	return view
}

func toProductView(product *entity.Product, store service.ImageStore) *productView {
	if product == nil {
		return nil
	}

	return &productView{
		ID:                 product.ID,
		Name:               product.Name,
		Category:           product.Category,
		Description:        product.Description,
		OriginalPrice:      product.OriginalPrice,
		NewPrice:           product.NewPrice,
		PercentageDiscount: product.PercentageDiscount,
		OfferExpiresAt:     product.OfferExpiresAt,
		ImageURL:           store.URL(product.Image),
		PublishedAt:        product.PublishedAt,
		Business:           toBusinessView(product.Business, store),
	}
}

func toProductViews(products []*entity.Product, store service.ImageStore) []*productView {
	views := make([]*productView, 0, len(products))
	for _, product := range products {
		views = append(views, toProductView(product, store))
	}

	return views
}

// currentUserID pulls the authenticated user's ID set by the auth middleware.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("userID").(uuid.UUID)

	return userID, ok
}
