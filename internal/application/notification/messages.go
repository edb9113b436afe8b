package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/minerepair/repairhub/internal/domain/request"
	requestvo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/biztime"
)

const timeLayout = "02.01.2006 15:04"

var statusNames = map[Lang]map[requestvo.Status]string{
	RU: {
		requestvo.StatusNew:                 "новая",
		requestvo.StatusManagerReview:       "на рассмотрении менеджера",
		requestvo.StatusClarification:       "требует уточнения",
		requestvo.StatusSentToContractors:   "отправлена исполнителям",
		requestvo.StatusContractorResponses: "есть отклики исполнителей",
		requestvo.StatusAssigned:            "исполнитель назначен",
		requestvo.StatusInProgress:          "в работе",
		requestvo.StatusCompleted:           "выполнена",
		requestvo.StatusCancelled:           "отменена",
	},
	EN: {
		requestvo.StatusNew:                 "new",
		requestvo.StatusManagerReview:       "under manager review",
		requestvo.StatusClarification:       "needs clarification",
		requestvo.StatusSentToContractors:   "sent to contractors",
		requestvo.StatusContractorResponses: "contractors responded",
		requestvo.StatusAssigned:            "contractor assigned",
		requestvo.StatusInProgress:          "in progress",
		requestvo.StatusCompleted:           "completed",
		requestvo.StatusCancelled:           "cancelled",
	},
}

func statusName(lang Lang, s requestvo.Status) string {
	if name, ok := statusNames[lang][s]; ok {
		return name
	}
	return s.String()
}

func pick(lang Lang, ru, en string) string {
	if lang == EN {
		return en
	}
	return ru
}

func formatCost(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f ₽", *v)
}

func buildRequestCreated(lang Lang, ev request.RequestCreatedEvent) Message {
	return Message{
		Subject: fmt.Sprintf(pick(lang, "Новая заявка #%d", "New request #%d"), ev.RequestID),
		Body: fmt.Sprintf(pick(lang,
			"**%s**\nСрочность: %s\nГород: %s\nСоздана: %s",
			"**%s**\nUrgency: %s\nCity: %s\nCreated: %s"),
			ev.Title, ev.Urgency, orDash(ev.City), biztime.FormatInBizTimezone(ev.OccurredAt, timeLayout)),
	}
}

func buildStatusChanged(lang Lang, ev request.StatusChangedEvent) Message {
	subject := fmt.Sprintf(pick(lang, "Заявка #%d: %s", "Request #%d: %s"), ev.RequestID, statusName(lang, ev.ToStatus))

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", ev.Title)
	fmt.Fprintf(&b, pick(lang, "Статус: %s → %s\n", "Status: %s → %s\n"), statusName(lang, ev.FromStatus), statusName(lang, ev.ToStatus))

	switch ev.ToStatus {
	case requestvo.StatusClarification:
		fmt.Fprintf(&b, pick(lang, "Уточнение: %s\n", "Clarification: %s\n"), ev.ClarificationDetails)
	case requestvo.StatusCompleted:
		fmt.Fprintf(&b, pick(lang, "Итоговая стоимость: %s\n", "Final price: %s\n"), formatCost(ev.FinalPrice))
	case requestvo.StatusCancelled:
		fmt.Fprintf(&b, pick(lang, "Причина: %s\n", "Reason: %s\n"), ev.Comment)
	case requestvo.StatusNew, requestvo.StatusManagerReview, requestvo.StatusSentToContractors,
		requestvo.StatusContractorResponses, requestvo.StatusAssigned, requestvo.StatusInProgress:
	}
	fmt.Fprintf(&b, pick(lang, "Время: %s", "Time: %s"), biztime.FormatInBizTimezone(ev.OccurredAt, timeLayout))

	return Message{Subject: subject, Body: b.String()}
}

// buildBroadcast is the post for the contractor channel. It carries no
// customer contact data.
func buildBroadcast(lang Lang, ev request.StatusChangedEvent) Message {
	eq := ev.Equipment
	return Message{
		Subject: fmt.Sprintf(pick(lang, "Заявка #%d открыта для откликов", "Request #%d is open for responses"), ev.RequestID),
		Body: fmt.Sprintf(pick(lang,
			"**%s**\nТехника: %s %s %s\nСрочность: %s\nГород: %s",
			"**%s**\nEquipment: %s %s %s\nUrgency: %s\nCity: %s"),
			ev.Title, eq.Type, eq.Brand, eq.Model, ev.Urgency, orDash(ev.City)),
	}
}

func buildResponseReceived(lang Lang, ev request.ResponseReceivedEvent) Message {
	return Message{
		Subject: fmt.Sprintf(pick(lang, "Новый отклик на заявку #%d", "New response to request #%d"), ev.RequestID),
		Body: fmt.Sprintf(pick(lang,
			"**%s**\nИсполнитель: #%d\nПредложенная стоимость: %s",
			"**%s**\nContractor: #%d\nProposed cost: %s"),
			ev.Title, ev.ContractorID, formatCost(ev.ProposedCost)),
	}
}

func buildStaleReminder(lang Lang, ev request.StaleRequestEvent) Message {
	hours := int(ev.Age.Round(time.Hour) / time.Hour)
	return Message{
		Subject: fmt.Sprintf(pick(lang, "Заявка #%d ждёт менеджера", "Request #%d is waiting for a manager"), ev.RequestID),
		Body: fmt.Sprintf(pick(lang,
			"**%s**\nБез ответственного уже %d ч.",
			"**%s**\nUnassigned for %d h."),
			ev.Title, hours),
	}
}

func buildVerificationQueued(lang Lang, contractorID uint, stage string) Message {
	return Message{
		Subject: fmt.Sprintf(pick(lang, "Исполнитель #%d ожидает проверки", "Contractor #%d awaits review"), contractorID),
		Body: fmt.Sprintf(pick(lang,
			"Этап: %s\nОткройте очередь верификации.",
			"Stage: %s\nOpen the verification queue."),
			stage),
	}
}

func buildVerificationApproved(lang Lang) Message {
	return Message{
		Subject: pick(lang, "Верификация пройдена", "Verification approved"),
		Body: pick(lang,
			"Ваш профиль подтверждён. Теперь вы можете откликаться на заявки.",
			"Your profile is verified. You can now respond to repair requests."),
	}
}

func buildSecurityRejected(lang Lang, notes string) Message {
	return Message{
		Subject: pick(lang, "Верификация отклонена", "Verification rejected"),
		Body: fmt.Sprintf(pick(lang,
			"Служба безопасности отклонила ваш профиль. Учётная запись деактивирована.\nКомментарий: %s",
			"Security rejected your profile and the account has been deactivated.\nNotes: %s"),
			orDash(notes)),
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
