// Package export renders a site to static HTML and CSS.
package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/Kiwi570/bulle/internal/bulle/site"
)

// Options controls document generation. The zero value produces a standalone
// page linking an external stylesheet.
type Options struct {
	// Title is the page <title>. Defaults to the site name.
	Title string
	// Description fills the meta description tag.
	Description string
	// CSSFileName is the stylesheet href when not inlining. Defaults to
	// "styles.css".
	CSSFileName string
	// InlineCSS embeds the stylesheet in a <style> block instead of linking
	// a file.
	InlineCSS bool
}

func esc(s string) string { return html.EscapeString(s) }

func spacingClass(spacing site.Spacing) string {
	switch spacing {
	case site.SpacingCompact:
		return "section-compact"
	case site.SpacingSpacious:
		return "section-spacious"
	default:
		return "section"
	}
}

func heroHTML(sec *site.Section, id string) string {
	content := sec.Content

	title := esc(content["title"])
	if highlight := content["titleHighlight"]; highlight != "" {
		title = strings.Replace(title, esc(highlight),
			`<span class="text-gradient">`+esc(highlight)+`</span>`, 1)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  <section id=\"%s\" class=\"hero %s\">\n", id, spacingClass(sec.Layout.Spacing))
	b.WriteString(`    <div class="hero-bg">
      <div class="bubble bubble-1"></div>
      <div class="bubble bubble-2"></div>
      <div class="bubble bubble-3"></div>
    </div>
    <div class="hero-content">
`)
	if badge := content["badge"]; badge != "" {
		fmt.Fprintf(&b, "      <span class=\"badge\">%s</span>\n", esc(badge))
	}
	fmt.Fprintf(&b, "      <h1 class=\"hero-title\">%s</h1>\n", title)
	if subtitle := content["subtitle"]; subtitle != "" {
		fmt.Fprintf(&b, "      <p class=\"hero-subtitle\">%s</p>\n", esc(subtitle))
	}
	b.WriteString("      <div class=\"hero-cta\">\n")
	if cta := content["ctaPrimary"]; cta != "" {
		fmt.Fprintf(&b, "        <a href=\"#\" class=\"btn btn-primary\">%s</a>\n", esc(cta))
	}
	if cta := content["ctaSecondary"]; cta != "" {
		fmt.Fprintf(&b, "        <a href=\"#\" class=\"btn btn-secondary\">%s</a>\n", esc(cta))
	}
	b.WriteString("      </div>\n    </div>\n  </section>\n")
	return b.String()
}

func featuresHTML(sec *site.Section, id string) string {
	gridClass := "features-grid"
	switch sec.Layout.Variant {
	case "grid-2":
		gridClass = "features-grid-2"
	case "list":
		gridClass = "features-list"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  <section id=\"%s\" class=\"features %s\">\n", id, spacingClass(sec.Layout.Spacing))
	b.WriteString("    <div class=\"container\">\n")
	writeHeading(&b, sec, "Fonctionnalités")
	fmt.Fprintf(&b, "      <div class=\"%s\">\n", gridClass)
	for i, item := range sec.Items {
		feat, ok := item.(*site.FeatureItem)
		if !ok {
			continue
		}
		color := feat.Color
		if color == "" {
			color = "#A78BFA"
		}
		fmt.Fprintf(&b, `        <div class="card feature-card animate-fade-in" style="animation-delay: %.1fs">
          <div class="feature-icon" style="background: %s20; color: %s">✦</div>
          <h3 class="feature-title">%s</h3>
          <p class="feature-description">%s</p>
        </div>
`, float64(i)*0.1, color, color, esc(feat.Title), esc(feat.Description))
	}
	b.WriteString("      </div>\n    </div>\n  </section>\n")
	return b.String()
}

func stepsHTML(sec *site.Section, id string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  <section id=\"%s\" class=\"steps %s\">\n", id, spacingClass(sec.Layout.Spacing))
	b.WriteString("    <div class=\"container\">\n")
	writeHeading(&b, sec, "Comment ça marche")
	b.WriteString("      <div class=\"steps-timeline\">\n")
	for i, item := range sec.Items {
		step, ok := item.(*site.StepItem)
		if !ok {
			continue
		}
		number := step.Number
		if number == 0 {
			number = i + 1
		}
		fmt.Fprintf(&b, `        <div class="step-item animate-fade-in" style="animation-delay: %.2fs">
          <div class="step-number">%d</div>
          <div class="step-content">
            <h3 class="step-title">%s</h3>
            <p class="step-description">%s</p>
          </div>
        </div>
`, float64(i)*0.15, number, esc(step.Title), esc(step.Description))
	}
	b.WriteString("      </div>\n    </div>\n  </section>\n")
	return b.String()
}

func pricingHTML(sec *site.Section, id string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  <section id=\"%s\" class=\"pricing %s\">\n", id, spacingClass(sec.Layout.Spacing))
	b.WriteString("    <div class=\"container\">\n")
	writeHeading(&b, sec, "Nos tarifs")
	b.WriteString("      <div class=\"pricing-grid\">\n")
	for i, item := range sec.Items {
		plan, ok := item.(*site.PlanItem)
		if !ok {
			continue
		}
		cardClass := "card pricing-card"
		btnClass := "btn btn-secondary"
		if plan.Highlighted {
			cardClass += " highlighted"
			btnClass = "btn btn-primary"
		}
		period := plan.Period
		if period == "" {
			period = "/mois"
		}
		cta := plan.CTA
		if cta == "" {
			cta = "Choisir"
		}
		fmt.Fprintf(&b, "        <div class=\"%s animate-fade-in\" style=\"animation-delay: %.1fs\">\n", cardClass, float64(i)*0.1)
		if plan.Badge != "" {
			fmt.Fprintf(&b, "          <span class=\"badge\">%s</span>\n", esc(plan.Badge))
		}
		fmt.Fprintf(&b, "          <h3 class=\"pricing-name\">%s</h3>\n", esc(plan.Name))
		fmt.Fprintf(&b, "          <div class=\"pricing-price\">%s</div>\n", esc(plan.Price))
		fmt.Fprintf(&b, "          <div class=\"pricing-period\">%s</div>\n", esc(period))
		if plan.Description != "" {
			fmt.Fprintf(&b, "          <p>%s</p>\n", esc(plan.Description))
		}
		b.WriteString("          <ul class=\"pricing-features\">\n")
		for _, f := range plan.Features {
			fmt.Fprintf(&b, "            <li>%s</li>\n", esc(f))
		}
		b.WriteString("          </ul>\n")
		fmt.Fprintf(&b, "          <a href=\"#\" class=\"%s\">%s</a>\n", btnClass, esc(cta))
		b.WriteString("        </div>\n")
	}
	b.WriteString("      </div>\n    </div>\n  </section>\n")
	return b.String()
}

func faqHTML(sec *site.Section, id string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  <section id=\"%s\" class=\"faq %s\">\n", id, spacingClass(sec.Layout.Spacing))
	b.WriteString("    <div class=\"container\">\n")
	writeHeading(&b, sec, "Questions fréquentes")
	b.WriteString("      <div class=\"faq-list\">\n")
	for i, item := range sec.Items {
		q, ok := item.(*site.FaqItem)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, `        <div class="faq-item animate-fade-in" style="animation-delay: %.1fs">
          <button class="faq-question" onclick="this.classList.toggle('active'); this.nextElementSibling.classList.toggle('hidden')">
            %s
            <span>▼</span>
          </button>
          <div class="faq-answer hidden">%s</div>
        </div>
`, float64(i)*0.1, esc(q.Question), esc(q.Answer))
	}
	b.WriteString("      </div>\n    </div>\n  </section>\n")
	return b.String()
}

func writeHeading(b *strings.Builder, sec *site.Section, fallback string) {
	title := sec.Content["title"]
	if title == "" {
		title = fallback
	}
	b.WriteString("      <div class=\"text-center\">\n")
	fmt.Fprintf(b, "        <h2>%s</h2>\n", esc(title))
	if subtitle := sec.Content["subtitle"]; subtitle != "" {
		fmt.Fprintf(b, "        <p class=\"mt-4\">%s</p>\n", esc(subtitle))
	}
	b.WriteString("      </div>\n")
}

// SectionHTML renders one section. Unknown types produce an HTML comment so
// the rest of the page still exports.
func SectionHTML(sec *site.Section, id string) string {
	switch sec.Type {
	case site.TypeHero:
		return heroHTML(sec, id)
	case site.TypeFeatures:
		return featuresHTML(sec, id)
	case site.TypeHowItWorks:
		return stepsHTML(sec, id)
	case site.TypePricing:
		return pricingHTML(sec, id)
	case site.TypeFaq:
		return faqHTML(sec, id)
	default:
		return fmt.Sprintf("  <!-- Unknown section type: %s -->\n", sec.Type)
	}
}

// HTML renders the complete document. Hidden sections are skipped; section
// order follows the site's order list.
func HTML(s *site.Site, opts Options) string {
	title := opts.Title
	if title == "" {
		title = s.Name
	}
	if title == "" {
		title = "Ma Landing Page"
	}
	description := opts.Description
	if description == "" {
		description = "Créée avec Bulle Editor"
	}
	cssFile := opts.CSSFileName
	if cssFile == "" {
		cssFile = "styles.css"
	}

	var sections strings.Builder
	for _, id := range s.VisibleOrder() {
		sec := s.Section(id)
		if sec == nil {
			continue
		}
		sections.WriteString(SectionHTML(sec, id))
	}

	var styles string
	if opts.InlineCSS {
		styles = "  <style>\n" + CSS(s) + "  </style>"
	} else {
		styles = fmt.Sprintf("  <link rel=\"stylesheet\" href=\"%s\">", cssFile)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="description" content="%s">
  <title>%s</title>
  <link rel="preconnect" href="https://fonts.googleapis.com">
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
  <link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700;800&display=swap" rel="stylesheet">
%s
  <link rel="icon" type="image/svg+xml" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='.9em' font-size='90'>🫧</text></svg>">
</head>
<body>
  <main>
%s  </main>
  <footer class="footer">
    <div class="container">
      <p>Créé avec 💜 par <strong>Bulle Editor</strong></p>
    </div>
  </footer>
  <script>
    const observer = new IntersectionObserver((entries) => {
      entries.forEach(entry => {
        if (entry.isIntersecting) {
          entry.target.style.opacity = '1';
          entry.target.style.transform = 'translateY(0)';
        }
      });
    }, { threshold: 0.1 });
    document.querySelectorAll('.animate-fade-in').forEach(el => {
      el.style.opacity = '0';
      el.style.transform = 'translateY(20px)';
      el.style.transition = 'all 0.6s ease';
      observer.observe(el);
    });
  </script>
</body>
</html>
`, esc(description), esc(title), styles, sections.String())
}
