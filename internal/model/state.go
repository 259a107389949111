package model

import (
	"encoding/json"
	"fmt"
)

// NewState returns an empty state value of the concrete type stored for f.
// Replace-whole families store the parsed report itself.
func NewState(f Family) (State, error) {
	switch f {
	case FamilyBalancete:
		return &BalanceteState{}, nil
	case FamilyAnaliseHorizontal:
		return &AnaliseHorizontal{}, nil
	case FamilyDREComparativa:
		return &DREComparativa{}, nil
	case FamilyDREMensal:
		return &DREMensal{}, nil
	case FamilyCSLL:
		return &CSLLState{}, nil
	case FamilyIRPJ:
		return &IRPJState{}, nil
	case FamilyFaturamento:
		return &FaturamentoState{}, nil
	case FamilyDemonstrativoMensal:
		return &DemonstrativoMensal{}, nil
	case FamilyResumoImpostos:
		return &ResumoImpostos{}, nil
	case FamilyResumoAcumulador:
		return &ResumoAcumuladorState{}, nil
	case FamilyFGTS:
		return &FGTS{}, nil
	case FamilyINSS:
		return &INSS{}, nil
	case FamilyEmpregados:
		return &Empregados{}, nil
	case FamilySalarioBase:
		return &SalarioBase{}, nil
	case FamilyFerias:
		return &Ferias{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, string(f))
}

// DecodeState unmarshals a stored state document of family f.
func DecodeState(f Family, data []byte) (State, error) {
	s, err := NewState(f)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decoding %s state: %w", f, err)
	}
	return s, nil
}

// EncodeState marshals s, checking it belongs to family f.
func EncodeState(f Family, s State) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("nil %s state", f)
	}
	if s.Family() != f {
		return nil, fmt.Errorf("state of family %s stored as %s", s.Family(), f)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding %s state: %w", f, err)
	}
	return data, nil
}
