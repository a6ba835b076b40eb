package site

// DefaultSite returns the starter document every new project begins from.
// Content mirrors the stock landing page shipped with the editor.
func DefaultSite() *Site {
	return &Site{
		Name:  "Mon Super Site",
		Theme: "aurora",
		SectionsOrder: []string{
			"hero", "features", "howItWorks", "pricing", "faq",
		},
		SectionsVisibility: map[string]bool{
			"hero": true, "features": true, "howItWorks": true, "pricing": true, "faq": true,
		},
		Sections: map[string]*Section{
			"hero": {
				Type: TypeHero,
				Content: map[string]string{
					"badge":          "✨ Nouveau",
					"title":          "Crée ta landing page parfaite en quelques clics",
					"titleHighlight": "parfaite",
					"subtitle":       "Un éditeur visuel intuitif avec une assistante IA pour créer des pages qui convertissent.",
					"ctaPrimary":     "Commencer gratuitement",
					"ctaSecondary":   "Voir la démo",
				},
				Layout: Layout{Variant: "centered", Spacing: SpacingNormal},
				Colors: map[string]string{
					"title": "#FFFFFF", "subtitle": "#9CA3AF", "badge": "#A78BFA",
					"ctaPrimary": "#A78BFA", "ctaSecondary": "#FFFFFF",
				},
			},
			"features": {
				Type: TypeFeatures,
				Content: map[string]string{
					"title":    "Tout ce dont tu as besoin",
					"subtitle": "Des outils puissants pour créer sans limites",
				},
				Layout: Layout{Variant: "grid-3", Spacing: SpacingNormal},
				Colors: map[string]string{"title": "#FFFFFF", "subtitle": "#9CA3AF"},
				Items: []Item{
					&FeatureItem{ID: "f1", Icon: "Zap", Color: "#FBBF24", Title: "Ultra rapide", Description: "Performance optimisée"},
					&FeatureItem{ID: "f2", Icon: "Sparkles", Color: "#A78BFA", Title: "IA intégrée", Description: "Bulle t'aide"},
					&FeatureItem{ID: "f3", Icon: "Palette", Color: "#F472B6", Title: "Personnalisable", Description: "Thèmes et couleurs"},
					&FeatureItem{ID: "f4", Icon: "Shield", Color: "#34D399", Title: "Sécurisé", Description: "Données protégées"},
					&FeatureItem{ID: "f5", Icon: "Smartphone", Color: "#22D3EE", Title: "Responsive", Description: "Mobile-first"},
					&FeatureItem{ID: "f6", Icon: "TrendingUp", Color: "#FB923C", Title: "Analytics", Description: "Stats en temps réel"},
				},
			},
			"howItWorks": {
				Type: TypeHowItWorks,
				Content: map[string]string{
					"title":    "Comment ça marche ?",
					"subtitle": "En 3 étapes simples",
				},
				Layout: Layout{Variant: "timeline", Spacing: SpacingNormal},
				Colors: map[string]string{"title": "#FFFFFF", "subtitle": "#9CA3AF"},
				Items: []Item{
					&StepItem{ID: "s1", Number: 1, Title: "Choisis un template", Description: "Parcours notre collection"},
					&StepItem{ID: "s2", Number: 2, Title: "Personnalise", Description: "Adapte à ta marque"},
					&StepItem{ID: "s3", Number: 3, Title: "Publie", Description: "En un clic"},
				},
			},
			"pricing": {
				Type: TypePricing,
				Content: map[string]string{
					"title":    "Tarifs simples",
					"subtitle": "Choisis le plan qui te convient",
				},
				Layout: Layout{Variant: "cards", Spacing: SpacingNormal},
				Colors: map[string]string{"title": "#FFFFFF", "subtitle": "#9CA3AF"},
				Items: []Item{
					&PlanItem{
						ID: "p1", Name: "Starter", Price: "Gratuit", Description: "Pour commencer",
						Features: []string{"1 page", "Templates de base", "Support email"},
						CTA:      "Commencer",
					},
					&PlanItem{
						ID: "p2", Name: "Pro", Price: "19€", Period: "/mois", Description: "Pour les pros",
						Features:    []string{"Pages illimitées", "Tous les templates", "Support prioritaire", "Analytics", "Domaine custom"},
						CTA:         "Essai gratuit",
						Highlighted: true,
						Badge:       "Populaire",
					},
					&PlanItem{
						ID: "p3", Name: "Business", Price: "49€", Period: "/mois", Description: "Pour les équipes",
						Features: []string{"Tout Pro +", "Multi-utilisateurs", "API access", "SLA garanti"},
						CTA:      "Contacter",
					},
				},
			},
			"faq": {
				Type: TypeFaq,
				Content: map[string]string{
					"title":    "Questions fréquentes",
					"subtitle": "Trouve ta réponse",
				},
				Layout: Layout{Variant: "accordion", Spacing: SpacingNormal},
				Colors: map[string]string{"title": "#FFFFFF", "subtitle": "#9CA3AF"},
				Items: []Item{
					&FaqItem{ID: "q1", Question: "Est-ce vraiment gratuit ?", Answer: "Oui ! Le plan Starter est 100% gratuit."},
					&FaqItem{ID: "q2", Question: "Puis-je utiliser mon domaine ?", Answer: "Oui, avec les plans Pro et Business."},
					&FaqItem{ID: "q3", Question: "Y a-t-il un engagement ?", Answer: "Non, tu peux annuler à tout moment."},
				},
			},
		},
	}
}

// Template returns a fresh section of the given type for insertion into an
// existing site. Item ids are left empty; the store assigns them on insert.
// Returns nil for types without a template (the hero is unique).
func Template(t SectionType) *Section {
	switch t {
	case TypeFeatures:
		return &Section{
			Type: TypeFeatures,
			Content: map[string]string{
				"title":    "Nouvelles fonctionnalités",
				"subtitle": "Découvre ce qu'on peut faire",
			},
			Layout: Layout{Variant: "grid-3", Spacing: SpacingNormal},
			Colors: map[string]string{"title": "#FFFFFF", "subtitle": "#9CA3AF"},
			Items: []Item{
				&FeatureItem{Icon: "Star", Color: "#A78BFA", Title: "Feature 1", Description: "Description"},
				&FeatureItem{Icon: "Heart", Color: "#F472B6", Title: "Feature 2", Description: "Description"},
				&FeatureItem{Icon: "Globe", Color: "#22D3EE", Title: "Feature 3", Description: "Description"},
			},
		}
	case TypeHowItWorks:
		return &Section{
			Type: TypeHowItWorks,
			Content: map[string]string{
				"title":    "Comment ça marche",
				"subtitle": "Processus simple",
			},
			Layout: Layout{Variant: "timeline", Spacing: SpacingNormal},
			Colors: map[string]string{"title": "#FFFFFF", "subtitle": "#9CA3AF"},
			Items: []Item{
				&StepItem{Number: 1, Title: "Étape 1", Description: "Description"},
				&StepItem{Number: 2, Title: "Étape 2", Description: "Description"},
				&StepItem{Number: 3, Title: "Étape 3", Description: "Description"},
			},
		}
	case TypePricing:
		return &Section{
			Type: TypePricing,
			Content: map[string]string{
				"title":    "Nos tarifs",
				"subtitle": "Transparent et simple",
			},
			Layout: Layout{Variant: "cards", Spacing: SpacingNormal},
			Colors: map[string]string{"title": "#FFFFFF", "subtitle": "#9CA3AF"},
			Items: []Item{
				&PlanItem{Name: "Basic", Price: "9€", Period: "/mois", Description: "Pour débuter", Features: []string{"Feature 1", "Feature 2"}, CTA: "Choisir"},
				&PlanItem{Name: "Premium", Price: "29€", Period: "/mois", Description: "Le plus populaire", Features: []string{"Feature 1", "Feature 2", "Feature 3"}, CTA: "Choisir", Highlighted: true, Badge: "Recommandé"},
			},
		}
	case TypeFaq:
		return &Section{
			Type: TypeFaq,
			Content: map[string]string{
				"title":    "FAQ",
				"subtitle": "Questions fréquentes",
			},
			Layout: Layout{Variant: "accordion", Spacing: SpacingNormal},
			Colors: map[string]string{"title": "#FFFFFF", "subtitle": "#9CA3AF"},
			Items: []Item{
				&FaqItem{Question: "Question 1 ?", Answer: "Réponse 1"},
				&FaqItem{Question: "Question 2 ?", Answer: "Réponse 2"},
			},
		}
	}
	return nil
}
