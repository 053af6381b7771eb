package mapping

import (
	"github.com/armax-ru/umka-online-gateway/internal/api"
	"github.com/armax-ru/umka-online-gateway/internal/models"
)

// Current returns the profile of the current protocol revision (FFD 1.05
// code sets, corrections, measure support, omitted absent client fields).
func Current() Profile {
	return Profile{
		Name: "v4",
		paymentTypes: map[models.PaymentType]int{
			models.PaymentCash:     0,
			models.PaymentCashless: 1,
			models.PaymentAdvance:  2,
			models.PaymentCredit:   3,
		},
		paymentMethods: map[models.CheckType]string{
			models.CheckTypeSell:                 api.PaymentMethodFullPayment,
			models.CheckTypeSellReturn:           api.PaymentMethodFullPayment,
			models.CheckTypeAdvance:              api.PaymentMethodAdvance,
			models.CheckTypeAdvanceReturn:        api.PaymentMethodAdvance,
			models.CheckTypePrepayment:           api.PaymentMethodPrepayment,
			models.CheckTypePrepaymentReturn:     api.PaymentMethodPrepayment,
			models.CheckTypeFullPrepayment:       api.PaymentMethodFullPrepayment,
			models.CheckTypeFullPrepaymentReturn: api.PaymentMethodFullPrepayment,
			models.CheckTypeCredit:               api.PaymentMethodCredit,
			models.CheckTypeCreditReturn:         api.PaymentMethodCredit,
			models.CheckTypeCreditPayment:        api.PaymentMethodCreditPayment,
			models.CheckTypeCreditPaymentReturn:  api.PaymentMethodCreditPayment,
		},
		paymentObjects: map[models.PaymentObject]string{
			models.ObjectCommodity:            "commodity",
			models.ObjectService:              "service",
			models.ObjectJob:                  "job",
			models.ObjectExcise:               "excise",
			models.ObjectPayment:              "payment",
			models.ObjectGamblingBet:          "gambling_bet",
			models.ObjectGamblingPrize:        "gambling_prize",
			models.ObjectLottery:              "lottery",
			models.ObjectLotteryPrize:         "lottery_prize",
			models.ObjectIntellectualActivity: "intellectual_activity",
			models.ObjectAgentCommission:      "agent_commission",
			models.ObjectComposite:            "composite",
			models.ObjectAnother:              "another",
			models.ObjectPropertyRight:        "property_right",
			models.ObjectNonOperatingGain:     "non-operating_gain",
			models.ObjectSalesTax:             "sales_tax",
			models.ObjectResortFee:            "resort_fee",
			models.ObjectDeposit:              "deposit",
			models.ObjectExpense:              "expense",
			models.ObjectMarkedCommodity:      "commodity",
			models.ObjectMarkedExcise:         "excise",
		},
		vatToCalcVat: map[string]string{
			api.Vat5:  api.CalcVat5,
			api.Vat7:  api.CalcVat7,
			api.Vat10: api.CalcVat10,
			api.Vat20: api.CalcVat20,
		},
		EmitEmptyClientFields: false,
		SupportsCorrections:   true,
		SupportsMeasure:       true,
		defaultVatByRate: map[int]string{
			0:  api.Vat0,
			5:  api.Vat5,
			7:  api.Vat7,
			10: api.Vat10,
			20: api.Vat20,
		},
	}
}

// Legacy returns the first-revision profile: cash carried code 4, every
// position was a commodity, client contacts were sent as empty strings and
// neither corrections nor measures existed.
func Legacy() Profile {
	return Profile{
		Name: "legacy",
		paymentTypes: map[models.PaymentType]int{
			models.PaymentCash:     4,
			models.PaymentCashless: 1,
			models.PaymentAdvance:  2,
			models.PaymentCredit:   3,
		},
		paymentMethods: map[models.CheckType]string{
			models.CheckTypeSell:                api.PaymentMethodFullPayment,
			models.CheckTypeSellReturn:          api.PaymentMethodFullPayment,
			models.CheckTypeAdvance:             api.PaymentMethodAdvance,
			models.CheckTypeAdvanceReturn:       api.PaymentMethodAdvance,
			models.CheckTypeCredit:              api.PaymentMethodCredit,
			models.CheckTypeCreditReturn:        api.PaymentMethodCredit,
			models.CheckTypeCreditPayment:       api.PaymentMethodCreditPayment,
			models.CheckTypeCreditPaymentReturn: api.PaymentMethodCreditPayment,
		},
		paymentObjects:        commodityOnlyObjects(),
		vatToCalcVat:          map[string]string{},
		EmitEmptyClientFields: true,
		SupportsCorrections:   false,
		SupportsMeasure:       false,
		defaultVatByRate: map[int]string{
			0:  api.Vat0,
			10: api.Vat10,
			18: api.Vat18,
		},
	}
}

func commodityOnlyObjects() map[models.PaymentObject]string {
	objects := map[models.PaymentObject]string{}
	for _, o := range []models.PaymentObject{
		models.ObjectCommodity, models.ObjectService, models.ObjectJob,
		models.ObjectExcise, models.ObjectPayment, models.ObjectGamblingBet,
		models.ObjectGamblingPrize, models.ObjectLottery, models.ObjectLotteryPrize,
		models.ObjectIntellectualActivity, models.ObjectAgentCommission,
		models.ObjectComposite, models.ObjectAnother, models.ObjectPropertyRight,
		models.ObjectNonOperatingGain, models.ObjectSalesTax, models.ObjectResortFee,
		models.ObjectDeposit, models.ObjectExpense, models.ObjectMarkedCommodity,
		models.ObjectMarkedExcise,
	} {
		objects[o] = "commodity"
	}
	return objects
}

// ByName resolves a configured profile name. An empty name selects the
// current revision; unrecognized names are a configuration error.
func ByName(name string) (Profile, bool) {
	switch name {
	case "", "v4":
		return Current(), true
	case "legacy", "v3":
		return Legacy(), true
	}
	return Profile{}, false
}
