package finco

import (
	"fmt"
	"sort"
	"strings"
)

// ClassificationType groups classifications by cost nature, the axis used by
// the spending breakdowns.
type ClassificationType string

const (
	FixedCost       ClassificationType = "FIXED_COST"
	VariableCost    ClassificationType = "VARIABLE_COST"
	FixedExpense    ClassificationType = "FIXED_EXPENSE"
	VariableExpense ClassificationType = "VARIABLE_EXPENSE"
	Tax             ClassificationType = "TAX"
	FinancialType   ClassificationType = "FINANCIAL"
	InvestmentType  ClassificationType = "INVESTMENT"
	Revenue         ClassificationType = "REVENUE"
)

// ClassificationTypes lists all classification types in display order.
var ClassificationTypes = []ClassificationType{
	FixedCost, VariableCost, FixedExpense, VariableExpense,
	Tax, Revenue, FinancialType, InvestmentType,
}

// ParseClassificationType parses a string into a ClassificationType.
func ParseClassificationType(s string) (ClassificationType, error) {
	t := ClassificationType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ClassificationTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown classification type %q", ErrValidation, s)
}

// Classification is a named tag grouping entries by economic nature.
type Classification struct {
	Name     string             // unique, case-normalized (upper-cased)
	Type     ClassificationType // cost nature
	Category Category           // default entry category for this classification
}

// NormalizeClassificationName upper-cases and trims a classification name,
// the canonical form under which classifications are stored and looked up.
func NormalizeClassificationName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Validate checks the classification fields.
func (c Classification) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: classification name is required", ErrValidation)
	}
	if _, err := ParseClassificationType(string(c.Type)); err != nil {
		return err
	}
	if _, err := ParseCategory(string(c.Category)); err != nil {
		return err
	}
	return nil
}

// Registry holds the known classifications indexed by normalized name.
//
// The registry is a request-scoped snapshot: callers build one from the
// store's classification list and pass it to the aggregations that need type
// lookups. There is no process-wide shared instance.
type Registry struct {
	byName map[string]Classification
}

// NewRegistry builds a registry from a classification list.
// Later duplicates of the same normalized name win, matching store order.
func NewRegistry(classifications []Classification) *Registry {
	r := &Registry{byName: make(map[string]Classification, len(classifications))}
	for _, c := range classifications {
		c.Name = NormalizeClassificationName(c.Name)
		r.byName[c.Name] = c
	}
	return r
}

// Resolve returns the classification with this name, if known.
// Entries referencing a deleted classification resolve to nothing and keep
// displaying their dangling name.
func (r *Registry) Resolve(name string) (Classification, bool) {
	c, ok := r.byName[NormalizeClassificationName(name)]
	return c, ok
}

// TypeOf returns the type of the named classification, if known.
func (r *Registry) TypeOf(name string) (ClassificationType, bool) {
	c, ok := r.Resolve(name)
	return c.Type, ok
}

// Names returns all classification names in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultClassifications returns the classification seed shipped with the
// system, matching the chart of accounts of the original spreadsheet.
func DefaultClassifications() []Classification {
	mk := func(t ClassificationType, cat Category, names ...string) []Classification {
		out := make([]Classification, 0, len(names))
		for _, n := range names {
			out = append(out, Classification{Name: n, Type: t, Category: cat})
		}
		return out
	}
	var all []Classification
	all = append(all, mk(FixedCost, Operational,
		"SALÁRIOS FÁBRICA", "ALUGUEL / SEGUROS / ETC", "MANUTENÇÃO MÁQ / FERRAM",
		"MATERIAL DE CONSUMO", "REFEIÇÃO LOCAL", "SEGURANÇA DO TRABALHO",
		"VALE ALIMENTAÇÃO", "VALE TRANSPORTE")...)
	all = append(all, mk(VariableCost, Operational,
		"MATÉRIA-PRIMA", "ANODIZAÇÃO", "COMPONENTES", "GALVANIZAÇÃO",
		"MATERIAL EMBALAGENS", "PINTURA EXTERNA", "PINTURA INTERNA")...)
	all = append(all, mk(FixedExpense, Operational,
		"LIMPEZA", "AÇÕES TRABALHISTAS", "ASSISTÊNCIA MÉDICA", "CARTORIOS/ LICENÇAS",
		"CATÁLOGOS", "CONTABILIDADE", "DESP. ADMISSÃO", "DESP. DEMISSÃO",
		"FEIRAS / EXIBIÇÕES/ASSOCIAÇÕES", "MANUTENÇÃO PREDIAL", "MATERIAL ESCRITÓRIO",
		"PASSAGENS / ESTADIAS", "SALÁRIOS ESCRITÓRIO", "SERVIÇO TERCEIROS",
		"SERVIÇOS DIVERSOS", "SINDICATO", "SISTEMAS", "SITE INTERNET",
		"TELEFONE / COMUNICAÇÃO", "TREINAMENTOS", "ALIMENTAÇÃO")...)
	all = append(all, mk(VariableExpense, Operational,
		"COMISSÃO DE VENDAS", "FRETES", "CORREIO/MOTOBOY/ETC")...)
	all = append(all, mk(Tax, Operational,
		"FGTS", "COFINS+PIS+IPI", "CSLL", "DIFAL", "GPS", "ICMS", "INSS", "IRPJ", "IRRF")...)
	all = append(all, mk(FinancialType, Financial,
		"AMORTIZAÇÃO", "APORTE DE CAPITAL", "DIVIDENDOS", "EMPRÉSTIMO",
		"FINANCIAMENTO", "JUROS", "TARIFA BANCÁRIA")...)
	all = append(all, mk(InvestmentType, Investment,
		"AMPLIAÇÃO/OBRA/REFORMA", "COMPONENTES DE MÁQUINAS", "FERRAMENTAS/ DISPOSITIVOS",
		"IMOBILIZADO", "MÁQUINAS", "MOBILIÁRIO", "RENDIMENTO DE APLICAÇÃO",
		"SOFTWARES", "TI")...)
	all = append(all, mk(Revenue, Operational, "VENDA DE PRODUTOS")...)
	all = append(all, mk(FixedExpense, Operational, "FORNECEDORES")...)
	all = append(all, mk(Revenue, Operational, "CLIENTES")...)
	return all
}
