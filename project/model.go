package project

import (
	"time"

	"github.com/adamwoolhether/rhodium/units"
	"github.com/google/uuid"
)

// SchemaVersion is the version of the project contract this package models.
const SchemaVersion = 3

// Project is a project record as served by the Rhodium24 API. Optional members
// are pointers or omitempty values: a member absent from the payload stays
// unset and is omitted again when encoded.
type Project struct {
	ID            uuid.UUID  `json:"id"`
	PartyID       uuid.UUID  `json:"partyId"`
	Version       int        `json:"version,omitempty"`
	ProjectNumber string     `json:"projectNumber,omitempty"`
	Name          string     `json:"name,omitempty"`
	Reference     string     `json:"reference,omitempty"`
	Status        Status     `json:"status,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	DeliveryDate  *time.Time `json:"deliveryDate,omitempty"`
	Customer      *Customer  `json:"customer,omitempty"`
	Totals        *Totals    `json:"totals,omitempty"`
	Articles      []Article  `json:"articles,omitempty"`
	Documents     []Document `json:"documents,omitempty"`
}

// Status is the lifecycle state of a project.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusQuoted    Status = "Quoted"
	StatusOrdered   Status = "Ordered"
	StatusProducing Status = "Producing"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// Customer is the party a project is made for.
type Customer struct {
	PartyID   uuid.UUID `json:"partyId"`
	Name      string    `json:"name,omitempty"`
	VatNumber string    `json:"vatNumber,omitempty"`
	Email     string    `json:"email,omitempty"`
}

// Totals holds the aggregated figures of a project.
type Totals struct {
	Subtotal       *units.Money    `json:"subtotal,omitempty"`
	Discount       *units.Money    `json:"discount,omitempty"`
	Shipping       *units.Money    `json:"shipping,omitempty"`
	Total          *units.Money    `json:"total,omitempty"`
	Weight         *units.Quantity `json:"weight,omitempty"`
	ProductionTime *units.Quantity `json:"productionTime,omitempty"`
}

// Article is a single part of a project, ordered in Quantity pieces.
type Article struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name,omitempty"`
	Drawing    string          `json:"drawing,omitempty"`
	Quantity   int             `json:"quantity"`
	Material   *Material       `json:"material,omitempty"`
	Thickness  *units.Quantity `json:"thickness,omitempty"`
	Length     *units.Quantity `json:"length,omitempty"`
	Width      *units.Quantity `json:"width,omitempty"`
	Area       *units.Quantity `json:"area,omitempty"`
	Weight     *units.Quantity `json:"weight,omitempty"`
	UnitPrice  *units.Money    `json:"unitPrice,omitempty"`
	TotalPrice *units.Money    `json:"totalPrice,omitempty"`
	Operations []Operation     `json:"operations,omitempty"`
	Documents  []Document      `json:"documents,omitempty"`
}

// Material describes the stock an article is cut from.
type Material struct {
	Code    string                     `json:"code"`
	Name    string                     `json:"name,omitempty"`
	Density *units.QuantityPerQuantity `json:"density,omitempty"`
	Price   *units.MoneyPerQuantity    `json:"price,omitempty"`
}

// Operation is a production step applied to an article.
type Operation struct {
	Kind      string                     `json:"kind"`
	Machine   string                     `json:"machine,omitempty"`
	SetupTime *units.Quantity            `json:"setupTime,omitempty"`
	CycleTime *units.Quantity            `json:"cycleTime,omitempty"`
	Speed     *units.QuantityPerQuantity `json:"speed,omitempty"`
	Rate      *units.MoneyPerQuantity    `json:"rate,omitempty"`
	Cost      *units.Money               `json:"cost,omitempty"`
}

// Document references a file attached to a project or article, retrievable
// by its FileName.
type Document struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
}
