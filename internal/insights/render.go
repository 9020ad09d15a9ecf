package insights

import (
	"fmt"
	"strings"
)

// Render writes the summary as the markdown-like report text
func (s *Summary) Render() string {
	var b strings.Builder
	tag := s.Period.Short()

	fmt.Fprintf(&b, "# ANÁLISE ESTRATÉGICA DE INADIMPLÊNCIA BANCÁRIA - %s %d\n\n", strings.ToUpper(s.Period.MonthName()), s.Period.Year)

	s.renderOverview(&b, tag)
	s.renderRegions(&b, tag)
	s.renderStates(&b, tag)
	s.renderSectors(&b, tag)
	s.renderClientTypes(&b, tag)
	s.renderSizes(&b)
	s.renderClientModalities(&b)
	s.renderModalities(&b, tag)
	s.renderOccupations(&b, tag)
	s.renderProjections(&b, tag)
	s.renderRestructuring(&b, tag)
	s.renderRecommendations(&b, tag)
	s.renderExecutive(&b, tag)

	return b.String()
}

func (s *Summary) renderOverview(b *strings.Builder, tag string) {
	fmt.Fprintf(b, "## 1. VISÃO GERAL DO CENÁRIO DE INADIMPLÊNCIA (%s)\n\n", tag)
	fmt.Fprintf(b, "- **Carteira Total**: R$ %s\n", money(s.Total.Active))
	fmt.Fprintf(b, "- **Total Inadimplido**: R$ %s (%s%% da carteira total)\n", money(s.Total.Delinquent), pct(s.Total.Rate()))
	fmt.Fprintf(b, "- **Ativos Problemáticos**: R$ %s\n", money(s.Total.Problematic))
	fmt.Fprintf(b, "- **Total de Operações**: %s\n", count(s.Total.Operations))
}

func (s *Summary) renderRegions(b *strings.Builder, tag string) {
	fmt.Fprintf(b, "\n## 2. PANORAMA REGIONAL DE INADIMPLÊNCIA (%s)\n\n", tag)
	for _, g := range s.Regions {
		fmt.Fprintf(b, "### %s:\n", g.Label())
		fmt.Fprintf(b, "- **Inadimplência**: R$ %s (%s%% do total inadimplido)\n", money(g.Delinquent), pct(s.Share(g)))
		fmt.Fprintf(b, "- **Taxa de Inadimplência**: %s%%\n", pct(g.Rate()))
		fmt.Fprintf(b, "- **Número de Operações**: %s\n\n", count(g.Operations))
	}
}

// volumeLine is "- **label**: R$ x (y% do total, Taxa: z%)"
func (s *Summary) volumeLine(b *strings.Builder, indent string, g Group) {
	fmt.Fprintf(b, "%s- **%s**: R$ %s (%s%% do total, Taxa: %s%%)\n", indent, g.Label(), money(g.Delinquent), pct(s.Share(g)), pct(g.Rate()))
}

// rateLine is "- **label**: z% (R$ x)"
func rateLine(b *strings.Builder, indent string, g Group) {
	fmt.Fprintf(b, "%s- **%s**: %s%% (R$ %s)\n", indent, g.Label(), pct(g.Rate()), money(g.Delinquent))
}

func (s *Summary) renderStates(b *strings.Builder, tag string) {
	fmt.Fprintf(b, "\n## 3. ESTADOS COM MAIOR ÍNDICE DE INADIMPLÊNCIA (%s)\n\n", tag)
	b.WriteString("### Top 5 Estados em Volume de Inadimplência:\n")
	for _, g := range s.States.ByVolume {
		s.volumeLine(b, "", g)
	}
	b.WriteString("\n### Top 5 Estados em Taxa de Inadimplência:\n")
	for _, g := range s.States.ByRate {
		rateLine(b, "", g)
	}
}

func (s *Summary) renderSectors(b *strings.Builder, tag string) {
	fmt.Fprintf(b, "\n## 4. SETORES ECONÔMICOS E INADIMPLÊNCIA (%s)\n\n", tag)
	b.WriteString("### Setores com Maior Volume de Inadimplência:\n")
	for _, g := range s.Sectors.ByVolume {
		s.volumeLine(b, "", g)
	}
	b.WriteString("\n### Setores com Maior Taxa de Inadimplência:\n")
	for _, g := range s.Sectors.ByRate {
		rateLine(b, "", g)
	}
}

func (s *Summary) renderClientTypes(b *strings.Builder, tag string) {
	fmt.Fprintf(b, "\n## 5. COMPARATIVO PESSOA FÍSICA VS PESSOA JURÍDICA (%s)\n\n", tag)
	b.WriteString("### Visão Geral PF vs PJ:\n")
	for _, g := range s.ClientTypes {
		fmt.Fprintf(b, "#### %s:\n", g.Label())
		fmt.Fprintf(b, "- **Inadimplência Total**: R$ %s (%s%% do total)\n", money(g.Delinquent), pct(s.Share(g)))
		fmt.Fprintf(b, "- **Taxa de Inadimplência**: %s%%\n", pct(g.Rate()))
		fmt.Fprintf(b, "- **Ativos Problemáticos**: R$ %s\n", money(g.Problematic))
		fmt.Fprintf(b, "- **Número de Operações**: %s\n", count(g.Operations))
		fmt.Fprintf(b, "- **Média por Operação**: R$ %s\n", money(g.AveragePerOperation()))
		fmt.Fprintf(b, "- **Projeção Inadimplência 90 Dias**: R$ %s (Risco: %s%%)\n\n", money(g.Projected90), pct(g.Risk90()))
	}
}

func (s *Summary) renderSizes(b *strings.Builder) {
	b.WriteString("### Distribuição por Porte:\n")
	for _, ct := range clientTypes {
		fmt.Fprintf(b, "#### %s:\n", ct)
		for _, g := range s.Sizes[ct] {
			fmt.Fprintf(b, "- **%s**: R$ %s (Taxa: %s%%, Índice Problemático: %s%%)\n", g.Keys[1], money(g.Delinquent), pct(g.Rate()), pct(g.ProblematicRatio()))
		}
		b.WriteString("\n")
	}
}

func (s *Summary) renderClientModalities(b *strings.Builder) {
	b.WriteString("### Modalidades de Crédito com Maior Inadimplência:\n")
	for _, ct := range clientTypes {
		ranking := s.ClientModalities[ct]
		fmt.Fprintf(b, "#### %s:\n", ct)
		b.WriteString("- **Top Modalidades por Volume de Inadimplência**:\n")
		for _, g := range ranking.ByVolume {
			s.volumeLine(b, "  ", Group{Keys: g.Keys[1:], Totals: g.Totals})
		}
		b.WriteString("- **Top Modalidades por Taxa de Inadimplência**:\n")
		for _, g := range ranking.ByRate {
			rateLine(b, "  ", Group{Keys: g.Keys[1:], Totals: g.Totals})
		}
		b.WriteString("\n")
	}
}

func (s *Summary) renderModalities(b *strings.Builder, tag string) {
	fmt.Fprintf(b, "\n## 6. MODALIDADES DE CRÉDITO E INADIMPLÊNCIA (%s)\n\n", tag)
	b.WriteString("### Top Modalidades por Volume de Inadimplência:\n")
	for _, g := range s.Modalities.ByVolume {
		s.volumeLine(b, "", g)
	}
	b.WriteString("\n### Top Modalidades por Taxa de Inadimplência:\n")
	for _, g := range s.Modalities.ByRate {
		rateLine(b, "", g)
	}
}

func (s *Summary) renderOccupations(b *strings.Builder, tag string) {
	fmt.Fprintf(b, "\n## 7. INADIMPLÊNCIA POR OCUPAÇÃO - PESSOA FÍSICA (%s)\n\n", tag)
	b.WriteString("### Ocupações com Maior Volume de Inadimplência:\n")
	for _, g := range s.Occupations.ByVolume {
		fmt.Fprintf(b, "- **%s**: R$ %s (Taxa: %s%%, Média: R$ %s)\n", g.Label(), money(g.Delinquent), pct(g.Rate()), money(g.AveragePerOperation()))
	}
	b.WriteString("\n### Ocupações com Maior Taxa de Inadimplência:\n")
	for _, g := range s.Occupations.ByRate {
		fmt.Fprintf(b, "- **%s**: %s%% (Volume: R$ %s)\n", g.Label(), pct(g.Rate()), money(g.Delinquent))
	}
}

func (s *Summary) renderProjections(b *strings.Builder, tag string) {
	fmt.Fprintf(b, "\n## 8. PROJEÇÃO DE INADIMPLÊNCIA EM 90 DIAS (%s)\n\n", tag)
	b.WriteString("### Projeção por Tipo e Porte de Cliente:\n")
	for _, g := range s.Projections {
		fmt.Fprintf(b, "- **%s**: R$ %s (Risco: %s%%, Aumento Previsto: %s%%)\n", g.Label(), money(g.Projected90), pct(g.Risk90()), pct(g.ProjectedIncrease()))
	}
}

func (s *Summary) renderRestructuring(b *strings.Builder, tag string) {
	fmt.Fprintf(b, "\n## 9. ANÁLISE DE REESTRUTURAÇÃO DE DÍVIDAS (%s)\n\n", tag)
	b.WriteString("### Indicadores de Reestruturação por Segmento:\n")
	for _, g := range s.Restructuring {
		fmt.Fprintf(b, "- **%s**: R$ %s (%s%% dos ativos problemáticos)\n", g.Label(), money(g.Restructuring), pct(g.RestructuringShare()))
	}
}

func (s *Summary) renderRecommendations(b *strings.Builder, tag string) {
	fmt.Fprintf(b, "\n## 10. RECOMENDAÇÕES ESTRATÉGICAS (%s)\n\n", tag)
	b.WriteString("### Ações Recomendadas por Segmento de Risco:\n")
	b.WriteString("#### Setores Econômicos de Alto Risco:\n")
	for _, g := range s.Recommendations.Sectors {
		fmt.Fprintf(b, "- **%s**: Implementar monitoramento especial e revisar políticas de crédito\n", g.Label())
	}
	b.WriteString("\n#### Regiões Críticas:\n")
	for _, g := range s.Recommendations.Regions {
		fmt.Fprintf(b, "- **%s**: Considerar condições macroeconômicas regionais e ajustar estratégias de cobrança\n", g.Label())
	}
	b.WriteString("\n#### Modalidades de Alto Risco:\n")
	for _, g := range s.Recommendations.Modalities {
		fmt.Fprintf(b, "- **%s**: Revisar critérios de aprovação e limites de crédito\n", g.Label())
	}
}

func (s *Summary) renderExecutive(b *strings.Builder, tag string) {
	e := s.Executive
	fmt.Fprintf(b, "\n## CONCLUSÃO EXECUTIVA (%s)\n\n", tag)
	fmt.Fprintf(b, "- A taxa global de inadimplência em %s está em **%s%%** da carteira total\n", s.Period.Long(), pct(e.Rate))
	fmt.Fprintf(b, "- Aproximadamente **%s%%** do volume inadimplido está concentrado na região %s\n", pct(e.LeadingRegionShare), e.LeadingRegion.Label())
	fmt.Fprintf(b, "- O setor **%s** apresenta a maior concentração de inadimplência (%s%%)\n", e.LeadingSector.Label(), pct(e.LeadingSectorShare))
	fmt.Fprintf(b, "- A modalidade **%s** apresenta a maior taxa de inadimplência (%s%%)\n", e.RiskiestModality.Label(), pct(e.RiskiestModality.Rate()))
	fmt.Fprintf(b, "- Projeção de inadimplência para os próximos 90 dias indica potencial aumento de até **%s%%**\n", pct(e.MeanProjectedIncrease))

	b.WriteString("\n### Próximos Passos Recomendados:\n")
	b.WriteString("1. Revisar políticas de crédito para os setores e modalidades de maior risco\n")
	b.WriteString("2. Monitorar de perto as regiões com altas taxas de inadimplência\n")
	b.WriteString("3. Avaliar estratégias de reestruturação para os segmentos com ativos problemáticos elevados\n")
	b.WriteString("4. Implementar alertas precoces baseados nas projeções de 90 dias\n")
}
