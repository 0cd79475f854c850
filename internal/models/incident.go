package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category - тип инцидента, определяет набор категорийных правил и секцию отчета
type Category string

const (
	CategoryPersonalInjury  Category = "personal_injury"
	CategoryPropertyDamage  Category = "property_damage"
	CategoryVehicleIncident Category = "vehicle_incident"
	CategoryPublicLiability Category = "public_liability"
)

// Severity - тяжесть травмы
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityFatal    Severity = "fatal"
)

// AttachmentTypePhoto - тег вложения-фотографии
const AttachmentTypePhoto = "photo"

// IncidentRecord - корневая запись об инциденте на рабочем месте.
// Запись создается и изменяется вне ядра, ядро получает ее только на время одного вызова.
type IncidentRecord struct {
	ID                  uuid.UUID            `json:"id"`
	ReferenceCode       string               `json:"referenceCode"`
	Category            Category             `json:"category"`
	DateOfIncident      string               `json:"dateOfIncident"`
	TimeOfIncident      string               `json:"timeOfIncident"`
	Location            Location             `json:"location"`
	ReportedBy          Person               `json:"reportedBy"`
	IncidentDescription IncidentDescription  `json:"incidentDescription"`
	PersonInvolved      *PersonInvolved      `json:"personInvolved,omitempty"`
	PeoplePresent       []string             `json:"peoplePresent,omitempty"`
	Witnesses           []Witness            `json:"witnesses,omitempty"`
	Attachments         []Attachment         `json:"attachments,omitempty"`
	RootCauseAnalysis   *RootCauseAnalysis   `json:"rootCauseAnalysis,omitempty"`
	CorrectiveActions   []CorrectiveAction   `json:"correctiveActions,omitempty"`
	Signatures          *SignatureSet        `json:"signatures,omitempty"`
	RegulatorAssessment *RegulatorAssessment `json:"regulatorAssessment,omitempty"`

	// Категорийные подзаписи: ожидается ровно одна, соответствующая Category
	InjuryDetails          *InjuryDetails          `json:"injuryDetails,omitempty"`
	PropertyDamageDetails  *PropertyDamageDetails  `json:"propertyDamageDetails,omitempty"`
	VehicleDetails         *VehicleDetails         `json:"vehicleDetails,omitempty"`
	PublicLiabilityDetails *PublicLiabilityDetails `json:"publicLiabilityDetails,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GPSPoint - координаты места инцидента в градусах
type GPSPoint struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// Location - место инцидента: GPS и/или адрес, хотя бы одно обязательно
type Location struct {
	Coordinates   *GPSPoint `json:"coordinates,omitempty"`
	ManualAddress string    `json:"manualAddress,omitempty"`
	SiteName      string    `json:"siteName,omitempty"`
}

// Person - сотрудник, сообщивший об инциденте
type Person struct {
	Name       string `json:"name"`
	JobTitle   string `json:"jobTitle,omitempty"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// PersonInvolved - пострадавший или причастный к инциденту человек
type PersonInvolved struct {
	FullName         string `json:"fullName"`
	JobTitle         string `json:"jobTitle,omitempty"`
	EmploymentStatus string `json:"employmentStatus,omitempty"`
	ContactNumber    string `json:"contactNumber,omitempty"`
	Address          string `json:"address,omitempty"`
}

type IncidentDescription struct {
	WhatHappened          string `json:"whatHappened"`
	ActivityAtTime        string `json:"activityAtTime,omitempty"`
	ImmediateActionsTaken string `json:"immediateActionsTaken,omitempty"`
	EquipmentInvolved     string `json:"equipmentInvolved,omitempty"`
	WeatherConditions     string `json:"weatherConditions,omitempty"`
}

// PPEUsage - сведения о средствах индивидуальной защиты.
// Для правил важно само наличие объекта, а не значение Worn.
type PPEUsage struct {
	Worn  bool     `json:"worn"`
	Items []string `json:"items,omitempty"`
}

type InjuryDetails struct {
	NatureOfInjury     string    `json:"natureOfInjury"`
	Severity           Severity  `json:"severity"`
	BodyPartsAffected  []string  `json:"bodyPartsAffected"`
	PPEUsed            *PPEUsage `json:"ppeUsed,omitempty"`
	FirstAidGiven      *bool     `json:"firstAidGiven,omitempty"`
	FirstAiderName     string    `json:"firstAiderName,omitempty"`
	HospitalAttendance *bool     `json:"hospitalAttendance,omitempty"`
	TimeOffWork        *bool     `json:"timeOffWork,omitempty"`
}

type PropertyDamageDetails struct {
	AssetDescription     string           `json:"assetDescription"`
	AssetType            string           `json:"assetType"`
	ExtentOfDamage       string           `json:"extentOfDamage"`
	EstimatedCost        *decimal.Decimal `json:"estimatedCost,omitempty"`
	UrgentRepairRequired *bool            `json:"urgentRepairRequired,omitempty"`
	OwnerName            string           `json:"ownerName,omitempty"`
}

type VehicleDetails struct {
	Registration          string `json:"registration"`
	Make                  string `json:"make,omitempty"`
	Model                 string `json:"model,omitempty"`
	DriverName            string `json:"driverName"`
	IsCompanyVehicle      *bool  `json:"isCompanyVehicle,omitempty"`
	PoliceNotified        *bool  `json:"policeNotified,omitempty"`
	PoliceReferenceNumber string `json:"policeReferenceNumber,omitempty"`
	ThirdPartyInvolved    *bool  `json:"thirdPartyInvolved,omitempty"`
	ThirdPartyDetails     string `json:"thirdPartyDetails,omitempty"`
	DamageDescription     string `json:"damageDescription,omitempty"`
}

type PublicLiabilityDetails struct {
	ReasonForBeingOnSite string `json:"reasonForBeingOnSite"`
	ContactDetails       string `json:"contactDetails,omitempty"`
	ClaimIndicated       *bool  `json:"claimIndicated,omitempty"`
}

// RegulatorAssessment - оценка необходимости уведомления регулятора (RIDDOR)
type RegulatorAssessment struct {
	Reportable      *bool      `json:"reportable,omitempty"`
	AssessedBy      string     `json:"assessedBy,omitempty"`
	ReportedAt      *time.Time `json:"reportedAt,omitempty"`
	ReferenceNumber string     `json:"referenceNumber,omitempty"`
}

type RootCauseAnalysis struct {
	DirectCause         string   `json:"directCause"`
	UnderlyingCause     string   `json:"underlyingCause"`
	ControlsAdequate    *bool    `json:"controlsAdequate,omitempty"`
	ContributingFactors []string `json:"contributingFactors,omitempty"`
	Method              string   `json:"method,omitempty"`
}

// ActionStatus - статус корректирующего действия
type ActionStatus string

const (
	ActionStatusOpen       ActionStatus = "open"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusCompleted  ActionStatus = "completed"
)

type CorrectiveAction struct {
	Description       string       `json:"description"`
	ResponsiblePerson string       `json:"responsiblePerson"`
	DueDate           string       `json:"dueDate,omitempty"`
	Status            ActionStatus `json:"status,omitempty"`
}

type Witness struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Statement string `json:"statement,omitempty"`
}

type Attachment struct {
	URI     string `json:"uri"`
	Type    string `json:"type"`
	Caption string `json:"caption,omitempty"`
}

type Signature struct {
	Name     string    `json:"name"`
	Role     string    `json:"role,omitempty"`
	SignedAt time.Time `json:"signedAt"`
	ImageRef string    `json:"imageRef,omitempty"`
}

// SignatureSet - именованные слоты подписей
type SignatureSet struct {
	Reporter     *Signature `json:"reporter,omitempty"`
	Investigator *Signature `json:"investigator,omitempty"`
	Witness      *Signature `json:"witness,omitempty"`
}
