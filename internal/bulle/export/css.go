package export

import (
	"fmt"
	"strings"

	"github.com/Kiwi570/bulle/internal/bulle/site"
	"github.com/Kiwi570/bulle/internal/bulle/theme"
)

// CSS renders the complete stylesheet for a site: the theme palette as
// custom properties plus the layout, component and animation rules the
// generated HTML relies on.
func CSS(s *site.Site) string {
	t := theme.ByID(s.Theme)
	c := t.Colors

	var b strings.Builder
	fmt.Fprintf(&b, "/* Bulle Editor — thème %s */\n\n", t.ID)

	b.WriteString(`*, *::before, *::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

html {
  scroll-behavior: smooth;
  -webkit-font-smoothing: antialiased;
}

`)

	fmt.Fprintf(&b, `body {
  font-family: 'Inter', system-ui, -apple-system, 'Segoe UI', sans-serif;
  background-color: %s;
  color: %s;
  line-height: 1.6;
  min-height: 100vh;
}

a { color: inherit; text-decoration: none; }
img { max-width: 100%%; height: auto; display: block; }
button { cursor: pointer; border: none; background: none; font: inherit; }

h1, h2, h3, h4 {
  font-weight: 700;
  line-height: 1.2;
  color: %s;
}

h1 { font-size: clamp(2.5rem, 5vw, 4rem); }
h2 { font-size: clamp(2rem, 4vw, 3rem); }
h3 { font-size: clamp(1.5rem, 3vw, 2rem); }

p { color: %s; }

`, c.Background, c.TextPrimary, c.TextPrimary, c.TextSecondary)

	fmt.Fprintf(&b, `:root {
  --color-bg: %s;
  --color-bg-secondary: %s;
  --color-surface: %s;
  --color-surface-hover: %s;
  --color-border: %s;
  --color-text: %s;
  --color-text-secondary: %s;
  --color-text-muted: %s;
  --color-accent: %s;
  --color-accent-secondary: %s;
  --gradient-primary: %s;
}

`, c.Background, c.BackgroundSecondary, c.Surface, c.SurfaceHover, c.Border,
		c.TextPrimary, c.TextSecondary, c.TextMuted,
		c.AccentPrimary, c.AccentSecondary, t.Gradient)

	b.WriteString(`.container {
  width: 100%;
  max-width: 1200px;
  margin: 0 auto;
  padding: 0 1.5rem;
}

.section { padding: 5rem 0; }
.section-compact { padding: 3rem 0; }
.section-spacious { padding: 7rem 0; }

.text-center { text-align: center; }
.mt-4 { margin-top: 1rem; }
.hidden { display: none; }

.text-gradient {
  background: var(--gradient-primary);
  -webkit-background-clip: text;
  background-clip: text;
  -webkit-text-fill-color: transparent;
}

.badge {
  display: inline-block;
  padding: 0.35rem 1rem;
  border-radius: 999px;
  border: 1px solid var(--color-border);
  background: var(--color-surface);
  color: var(--color-accent);
  font-size: 0.85rem;
  font-weight: 600;
}

.btn {
  display: inline-block;
  padding: 0.85rem 2rem;
  border-radius: 12px;
  font-weight: 600;
  transition: transform 0.2s ease, box-shadow 0.2s ease;
}

.btn:hover { transform: translateY(-2px); }

.btn-primary {
  background: var(--gradient-primary);
  color: #fff;
}

.btn-secondary {
  background: var(--color-surface);
  border: 1px solid var(--color-border);
  color: var(--color-text);
}

.card {
  background: var(--color-surface);
  border: 1px solid var(--color-border);
  border-radius: 16px;
  padding: 2rem;
  transition: transform 0.2s ease;
}

.card:hover { transform: translateY(-4px); }

/* Hero */
.hero {
  position: relative;
  overflow: hidden;
  text-align: center;
}

.hero-content {
  position: relative;
  max-width: 820px;
  margin: 0 auto;
  padding: 0 1.5rem;
}

.hero-title { margin: 1.25rem 0; }

.hero-subtitle {
  font-size: 1.2rem;
  color: var(--color-text-secondary);
  max-width: 600px;
  margin: 0 auto 2rem;
}

.hero-cta {
  display: flex;
  gap: 1rem;
  justify-content: center;
  flex-wrap: wrap;
}

.hero-bg { position: absolute; inset: 0; pointer-events: none; }

.bubble {
  position: absolute;
  border-radius: 50%;
  background: var(--gradient-primary);
  opacity: 0.12;
  filter: blur(60px);
}

.bubble-1 { width: 400px; height: 400px; top: -100px; left: -100px; }
.bubble-2 { width: 300px; height: 300px; bottom: -50px; right: -50px; }
.bubble-3 { width: 200px; height: 200px; top: 40%; left: 60%; }

/* Features */
.features-grid {
  display: grid;
  grid-template-columns: repeat(3, 1fr);
  gap: 1.5rem;
  margin-top: 3rem;
}

.features-grid-2 {
  display: grid;
  grid-template-columns: repeat(2, 1fr);
  gap: 1.5rem;
  margin-top: 3rem;
}

.features-list {
  display: flex;
  flex-direction: column;
  gap: 1.5rem;
  margin-top: 3rem;
}

.feature-icon {
  width: 48px;
  height: 48px;
  border-radius: 12px;
  display: flex;
  align-items: center;
  justify-content: center;
  font-size: 1.4rem;
  margin-bottom: 1rem;
}

.feature-title { font-size: 1.15rem; margin-bottom: 0.5rem; }
.feature-description { color: var(--color-text-muted); font-size: 0.95rem; }

/* Steps */
.steps-timeline {
  display: flex;
  flex-direction: column;
  gap: 2rem;
  max-width: 700px;
  margin: 3rem auto 0;
}

.step-item {
  display: flex;
  gap: 1.5rem;
  align-items: flex-start;
}

.step-number {
  flex-shrink: 0;
  width: 44px;
  height: 44px;
  border-radius: 50%;
  background: var(--gradient-primary);
  color: #fff;
  font-weight: 700;
  display: flex;
  align-items: center;
  justify-content: center;
}

.step-title { margin-bottom: 0.35rem; font-size: 1.15rem; }
.step-description { color: var(--color-text-muted); }

/* Pricing */
.pricing-grid {
  display: grid;
  grid-template-columns: repeat(3, 1fr);
  gap: 1.5rem;
  margin-top: 3rem;
  align-items: start;
}

.pricing-card { text-align: center; }

.pricing-card.highlighted {
  border-color: var(--color-accent);
  transform: scale(1.03);
}

.pricing-name { font-size: 1.1rem; margin-bottom: 0.75rem; }
.pricing-price { font-size: 2.2rem; font-weight: 800; }
.pricing-period { color: var(--color-text-muted); margin-bottom: 1rem; }

.pricing-features {
  list-style: none;
  margin: 1.25rem 0;
  color: var(--color-text-secondary);
}

.pricing-features li { padding: 0.35rem 0; }

/* FAQ */
.faq-list {
  max-width: 700px;
  margin: 3rem auto 0;
  display: flex;
  flex-direction: column;
  gap: 1rem;
}

.faq-item {
  background: var(--color-surface);
  border: 1px solid var(--color-border);
  border-radius: 12px;
  overflow: hidden;
}

.faq-question {
  width: 100%;
  display: flex;
  justify-content: space-between;
  align-items: center;
  padding: 1.1rem 1.5rem;
  color: var(--color-text);
  font-weight: 600;
  text-align: left;
}

.faq-answer {
  padding: 0 1.5rem 1.25rem;
  color: var(--color-text-muted);
}

/* Footer */
.footer {
  border-top: 1px solid var(--color-border);
  padding: 2.5rem 0;
  text-align: center;
  color: var(--color-text-muted);
}

/* Responsive */
@media (max-width: 900px) {
  .features-grid, .pricing-grid { grid-template-columns: repeat(2, 1fr); }
}

@media (max-width: 640px) {
  .features-grid, .features-grid-2, .pricing-grid { grid-template-columns: 1fr; }
  .hero-cta { flex-direction: column; align-items: center; }
}
`)

	return b.String()
}
