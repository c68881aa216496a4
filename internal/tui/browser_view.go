package tui

import (
	"fmt"
	"strings"

	"github.com/contractlens/contractlens/internal/amount"
	"github.com/contractlens/contractlens/internal/pagination"
	"github.com/contractlens/contractlens/internal/query"
)

const browserHelp = "n/p página · g/G primera/última · t/o/d/a/e/s ordenar · / buscar · " +
	"T/O/S/R filtrar · c limpiar · +/- tamaño · x exportar · enter detalle · q salir"

// View renders the current screen (Bubble Tea interface).
func (m BrowserModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetail()
	default:
		return m.renderList()
	}
}

func (m BrowserModel) renderList() string {
	var b strings.Builder
	state := m.ctrl.State()

	b.WriteString(HeaderStyle.Render("Contratos públicos"))
	if state.Result.TotalElements > 0 {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %s contratos",
			amount.FormatCount(int64(state.Result.TotalElements)))))
	}
	b.WriteString("\n")
	b.WriteString(m.renderQueryLine(state))
	b.WriteString("\n\n")

	switch {
	case m.state == ViewStateLoading:
		b.WriteString(RenderLoading(m.loading))
		b.WriteString("\n")
	case state.Result.IsEmpty() && state.Status != query.StatusError:
		b.WriteString(SubtleStyle.Render("No se encontraron contratos."))
		b.WriteString("\n")
	case !state.Result.IsEmpty():
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if pager := RenderPager(m.ctrl.Window(), state.Page); pager != "" {
		b.WriteString("\n")
		b.WriteString(pager)
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("  Página %d de %d · %d por página",
			state.Page+1, max(state.Result.TotalPages, 1), state.PageSize)))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus(state))

	if m.editing != "" {
		b.WriteString("\n")
		b.WriteString(m.renderEditor())
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(browserHelp))
	} else {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("? ayuda · q salir"))
	}
	return b.String()
}

func (m BrowserModel) renderQueryLine(state query.State) string {
	parts := []string{}
	search, value, ignored := query.SelectSearch(state.Active)
	if value != "" {
		parts = append(parts, LabelStyle.Render("Filtro: ")+ValueStyle.Render(
			fmt.Sprintf("%s = %q", FilterLabel(query.FilterFor(search)), value)))
	}
	for _, f := range ignored {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("(%s ignorado)", FilterLabel(f))))
	}
	if !state.Sort.IsEmpty() {
		parts = append(parts, LabelStyle.Render("Orden: ")+ValueStyle.Render(
			strings.Join(state.Sort.Values(), "; ")))
	}
	if len(parts) == 0 {
		return SubtleStyle.Render("Sin filtros")
	}
	return strings.Join(parts, "  ")
}

func (m BrowserModel) renderStatus(state query.State) string {
	var b strings.Builder
	if state.Status == query.StatusLoading && m.state != ViewStateLoading {
		b.WriteString(m.loading.View())
		b.WriteString("\n")
	}
	if state.Status == query.StatusError {
		b.WriteString(ErrorStyle.Render("Error al cargar los contratos: " + errorText(state.Err)))
		b.WriteString(SubtleStyle.Render("  (r para reintentar)"))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n")
	}
	return b.String()
}

func errorText(err error) string {
	if err == nil {
		return "error desconocido"
	}
	return err.Error()
}

func (m BrowserModel) renderEditor() string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render(FilterLabel(m.editing) + ": "))
	b.WriteString(m.input.View())
	b.WriteString("\n")
	for i, s := range m.suggestions {
		if i == m.suggestIdx {
			b.WriteString(TableSelectedStyle.Render("  " + s))
		} else {
			b.WriteString("  " + s)
		}
		b.WriteString("\n")
	}
	b.WriteString(SubtleStyle.Render("enter aplicar · tab completar · esc cancelar"))
	b.WriteString("\n")
	return b.String()
}

func (m BrowserModel) renderDetail() string {
	return m.detail.View() + "\n" + SubtleStyle.Render("esc volver · ↑/↓ desplazar · q salir")
}

// RenderPager renders a page window with the 0-based current page highlighted.
func RenderPager(items []pagination.PageItem, currentPage int) string {
	var b strings.Builder
	for _, it := range items {
		switch {
		case it.Ellipsis:
			b.WriteString(SubtleStyle.Render(" … "))
		case it.Page == currentPage+1:
			b.WriteString(CurrentPageStyle.Render(fmt.Sprint(it.Page)))
		default:
			b.WriteString(PageStyle.Render(fmt.Sprint(it.Page)))
		}
	}
	return b.String()
}
