package usecases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/domain/repositories"
)

const contractDateLayout = "02/01/2006"

// ContractUsecase renders rental contracts. Demands and offers get a
// plain-text summary; approved reservations get a PDF.
type ContractUsecase struct {
	demandRepo      repositories.DemandRepository
	offerRepo       repositories.OfferRepository
	proposalRepo    repositories.ProposalRepository
	reservationRepo repositories.ReservationRepository
}

// NewContractUsecase creates a new contract usecase
func NewContractUsecase(
	demandRepo repositories.DemandRepository,
	offerRepo repositories.OfferRepository,
	proposalRepo repositories.ProposalRepository,
	reservationRepo repositories.ReservationRepository,
) *ContractUsecase {
	return &ContractUsecase{
		demandRepo:      demandRepo,
		offerRepo:       offerRepo,
		proposalRepo:    proposalRepo,
		reservationRepo: reservationRepo,
	}
}

// DemandContract renders the service agreement between the farmer and the
// accepted provider. The demand must be matched with an accepted proposal.
func (u *ContractUsecase) DemandContract(ctx context.Context, demandID uuid.UUID) (string, error) {
	demand, err := u.demandRepo.GetByIDWithFarmer(ctx, demandID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("demand not found")
		}
		return "", err
	}
	if demand.Status != entities.DemandStatusMatched {
		return "", domainerrors.BadRequest("demand is not matched yet")
	}

	proposal, err := u.proposalRepo.GetAcceptedByDemand(ctx, demandID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("no accepted proposal on this demand")
		}
		return "", err
	}

	var b strings.Builder
	b.WriteString("CONTRAT DE PRESTATION DE SERVICE AGRICOLE\n")
	b.WriteString("==========================================\n\n")
	fmt.Fprintf(&b, "Date d'émission : %s\n\n", time.Now().Format(contractDateLayout))
	fmt.Fprintf(&b, "Agriculteur : %s\n", demand.FarmerName)
	fmt.Fprintf(&b, "Prestataire : %s\n\n", proposal.ProviderName)
	fmt.Fprintf(&b, "Service : %s\n", demand.RequiredService)
	fmt.Fprintf(&b, "Lieu : %s, %s\n", demand.Address, demand.City)
	fmt.Fprintf(&b, "Période : du %s au %s\n", demand.RequiredStart.Format(contractDateLayout), demand.RequiredEnd.Format(contractDateLayout))
	fmt.Fprintf(&b, "Prix convenu : %.2f MAD\n\n", proposal.Price)
	b.WriteString("Les deux parties s'engagent à respecter les termes ci-dessus.\n")
	return b.String(), nil
}

// OfferContract renders the standing rental terms of an offer.
func (u *ContractUsecase) OfferContract(ctx context.Context, offerID uuid.UUID) (string, error) {
	offer, err := u.offerRepo.GetByIDWithProvider(ctx, offerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("offer not found")
		}
		return "", err
	}

	var b strings.Builder
	b.WriteString("CONDITIONS DE LOCATION DE MATÉRIEL AGRICOLE\n")
	b.WriteString("============================================\n\n")
	fmt.Fprintf(&b, "Date d'émission : %s\n\n", time.Now().Format(contractDateLayout))
	fmt.Fprintf(&b, "Prestataire : %s\n", offer.ProviderName)
	fmt.Fprintf(&b, "Matériel : %s\n", offer.EquipmentType)
	fmt.Fprintf(&b, "Tarif : %.2f MAD/jour\n", offer.PriceRate)
	fmt.Fprintf(&b, "Zone de service : %s\n", offer.City)
	if offer.Description != "" {
		fmt.Fprintf(&b, "\nDescription :\n%s\n", offer.Description)
	}
	return b.String(), nil
}

// ReservationContractPDF renders the signed rental contract for an
// approved reservation. Only a party to the reservation or an admin may
// download it.
func (u *ContractUsecase) ReservationContractPDF(ctx context.Context, actorID uuid.UUID, actorRole entities.UserRole, reservationID uuid.UUID) ([]byte, error) {
	reservation, err := u.reservationRepo.GetByIDFull(ctx, reservationID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("reservation not found")
		}
		return nil, err
	}
	if actorID != reservation.FarmerID && actorID != reservation.ProviderID && actorRole != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("not a party to this reservation")
	}
	if reservation.Status != entities.ReservationStatusApproved {
		return nil, domainerrors.BadRequest("contract is only available for approved reservations")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, tr("Contrat de location de matériel agricole"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	writeContractLine(pdf, tr, "Référence", reservation.ID.String())
	writeContractLine(pdf, tr, "Date d'émission", time.Now().Format(contractDateLayout))
	if reservation.ApprovedAt != nil {
		writeContractLine(pdf, tr, "Approuvée le", reservation.ApprovedAt.Format(contractDateLayout))
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Parties"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	writeContractLine(pdf, tr, "Agriculteur", reservation.FarmerName)
	if reservation.FarmerPhone.Valid {
		writeContractLine(pdf, tr, "Téléphone", reservation.FarmerPhone.String)
	}
	writeContractLine(pdf, tr, "Prestataire", reservation.ProviderName)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Objet"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	writeContractLine(pdf, tr, "Matériel", reservation.EquipmentType)
	writeContractLine(pdf, tr, "Période", fmt.Sprintf("du %s au %s",
		reservation.ReservedStart.Format(contractDateLayout),
		reservation.ReservedEnd.Format(contractDateLayout)))
	writeContractLine(pdf, tr, "Tarif", fmt.Sprintf("%.2f MAD/jour", reservation.PriceRate))
	if reservation.TotalCost.Valid {
		writeContractLine(pdf, tr, "Coût total", fmt.Sprintf("%.2f MAD", reservation.TotalCost.Float64))
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr("Les deux parties reconnaissent avoir validé cette réservation via la plateforme YKRI et s'engagent à respecter les termes ci-dessus."), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeContractLine(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.CellFormat(45, 7, tr(label+" :"), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
}
