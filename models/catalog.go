package models

import "time"

// Product groups stock variants and carries the many-to-many back-references
// to brands, categories and offers. A product holds at most one active offer.
type Product struct {
	ProductID   string    `json:"productid" bson:"productid"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Rating      float64   `json:"rating" bson:"rating"`
	ImageID     string    `json:"imageid,omitempty" bson:"imageid,omitempty"`
	Categories  []string  `json:"categories" bson:"categories"`
	Brands      []string  `json:"brands" bson:"brands"`
	Stocks      []string  `json:"stocks" bson:"stocks"`
	Offers      []string  `json:"offers" bson:"offers"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	ModifiedAt  time.Time `json:"modified_at" bson:"modified_at"`
}

// Stock is one color/size variant of a product. Amount is the base unit price
// in minor units. OfferPrice is the discounted unit price while an offer is
// active on the parent product; nil means no offer.
type Stock struct {
	StockID    string    `json:"stockid" bson:"stockid"`
	ProductID  string    `json:"productid" bson:"productid"`
	Color      string    `json:"color" bson:"color"`
	Size       string    `json:"size" bson:"size"`
	Amount     int64     `json:"amount" bson:"amount"`
	OfferPrice *int64    `json:"offer_price,omitempty" bson:"offer_price,omitempty"`
	Quantity   int       `json:"quantity" bson:"quantity"`
	Images     []string  `json:"images" bson:"images"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	ModifiedAt time.Time `json:"modified_at" bson:"modified_at"`
}

// UnitPrice returns the price checkout must charge for this stock right now.
func (s *Stock) UnitPrice() int64 {
	if s.OfferPrice != nil {
		return *s.OfferPrice
	}
	return s.Amount
}

type Brand struct {
	BrandID     string    `json:"brandid" bson:"brandid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	ImageID     string    `json:"imageid,omitempty" bson:"imageid,omitempty"`
	Products    []string  `json:"products" bson:"products"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type Category struct {
	CategoryID  string    `json:"categoryid" bson:"categoryid"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Products    []string  `json:"products" bson:"products"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Offer is a percentage discount campaign, time-bounded by EndAt. Products
// lists the product ids it is currently applied to.
type Offer struct {
	OfferID     string    `json:"offerid" bson:"offerid"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Discount    int64     `json:"discount" bson:"discount"`
	Products    []string  `json:"products" bson:"products"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	EndAt       time.Time `json:"end_at" bson:"end_at"`
	ModifiedAt  time.Time `json:"modified_at" bson:"modified_at"`
}

type Coupon struct {
	CouponID    string    `json:"couponid" bson:"couponid"`
	Code        string    `json:"code" bson:"code"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Discount    int64     `json:"discount" bson:"discount"`
	EndAt       time.Time `json:"end_at" bson:"end_at"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type Image struct {
	ImageID   string    `json:"imageid" bson:"imageid"`
	FileName  string    `json:"filename" bson:"filename"`
	URL       string    `json:"url" bson:"url"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
