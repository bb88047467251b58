package ui

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/dastanaron/netscape-bookmarks/internal/models"
	"github.com/dastanaron/netscape-bookmarks/internal/service"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	ModeNormal = 1
	ModeSearch = 2
	ModeModal  = 4
)

// App is the terminal browser over imported bookmarks
type App struct {
	app        *tview.Application
	folderList *tview.List
	list       *tview.List
	detail     *tview.TextView
	search     *tview.InputField
	status     *tview.TextView
	pages      *tview.Pages
	mode       uint8

	bookmarkSvc *service.BookmarkService
	folderSvc   *service.FolderService

	folderItems    []folderItem
	selectedFolder *int // nil = root
	focusOnFolders bool
	items          []models.Item
	currentItem    *models.Item
}

// NewApp creates a new application instance
func NewApp(bookmarkSvc *service.BookmarkService, folderSvc *service.FolderService) *App {
	return &App{
		app:         tview.NewApplication(),
		folderList:  tview.NewList().ShowSecondaryText(false),
		list:        tview.NewList(),
		detail:      tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		search:      tview.NewInputField().SetLabel("Search: "),
		status:      tview.NewTextView().SetDynamicColors(true),
		pages:       tview.NewPages(),
		mode:        ModeNormal,
		bookmarkSvc: bookmarkSvc,
		folderSvc:   folderSvc,
	}
}

// Run starts the application
func (a *App) Run() error {
	a.folderList.SetBorder(true).SetTitle("Folders")
	a.list.SetBorder(true).SetTitle("Items")
	a.detail.SetBorder(true).SetTitle("Details")

	cols := tview.NewFlex().
		AddItem(a.folderList, 0, 1, false).
		AddItem(a.list, 0, 3, true).
		AddItem(a.detail, 0, 2, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.search, 1, 0, false).
		AddItem(cols, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.pages.AddPage("main", main, true, true)

	if err := a.fillFolderList(); err != nil {
		return err
	}
	if err := a.loadFolderContent(); err != nil {
		return err
	}

	a.search.SetChangedFunc(a.applyFilter)
	a.search.SetDoneFunc(a.onSearchDone)
	a.list.SetChangedFunc(func(index int, _, _ string, _ rune) { a.selectItem(index) })

	a.app.SetRoot(a.pages, true)
	a.app.SetInputCapture(a.globalInput)
	a.updateStatus()
	a.app.SetFocus(a.list)
	return a.app.Run()
}

func (a *App) fillFolderList() error {
	folders, err := a.folderSvc.ListAll()
	if err != nil {
		return err
	}

	a.folderItems = folderTree(folders)
	a.folderList.Clear()
	for _, item := range a.folderItems {
		a.folderList.AddItem(item.label(), "", 0, nil)
	}
	return nil
}

func (a *App) loadFolderContent() error {
	if a.search.GetText() != "" {
		a.applyFilter(a.search.GetText())
		return nil
	}

	items, err := a.folderSvc.GetFolderContent(a.selectedFolder)
	if err != nil {
		a.items = nil
		a.fillList()
		return err
	}
	a.items = items
	a.fillList()
	return nil
}

// applyFilter searches bookmarks of the selected folder, or of all
// folders when none is selected.
func (a *App) applyFilter(text string) {
	if text == "" {
		_ = a.loadFolderContent()
		return
	}

	var bookmarks []models.Bookmark
	var err error
	if a.selectedFolder == nil {
		bookmarks, err = a.bookmarkSvc.Search(text)
	} else {
		bookmarks, err = a.bookmarkSvc.SearchInFolder(text, a.selectedFolder)
	}
	if err != nil {
		a.items = nil
		a.fillList()
		return
	}

	items := make([]models.Item, 0, len(bookmarks))
	for _, b := range bookmarks {
		url, desc := b.URL, b.Description
		items = append(items, models.Item{
			Type:        models.ItemTypeBookmark,
			ID:          b.ID,
			Name:        b.Title,
			URL:         &url,
			Description: &desc,
			Icon:        b.Icon,
			ParentID:    b.FolderID,
		})
	}
	a.items = items
	a.fillList()
}

func (a *App) fillList() {
	a.list.Clear()
	for _, item := range a.items {
		if item.Type == models.ItemTypeFolder {
			a.list.AddItem("📁 "+item.Name, "Folder", 0, nil)
			continue
		}
		secondary := ""
		if item.URL != nil {
			secondary = *item.URL
		}
		a.list.AddItem(item.Name, secondary, 0, nil)
	}
	a.selectItem(0)
	a.updateStatus()
}

func (a *App) selectItem(index int) {
	if index < 0 || index >= len(a.items) {
		a.currentItem = nil
		a.detail.SetText("")
		return
	}
	a.currentItem = &a.items[index]
	a.showDetails()
}

func (a *App) showDetails() {
	item := a.currentItem
	if item.Type == models.ItemTypeFolder {
		parent := "Root"
		if item.ParentID != nil {
			if f, err := a.folderSvc.GetByID(*item.ParentID); err == nil && f != nil {
				parent = f.Name
			}
		}
		a.detail.SetText(renderFolder(item.Name, parent))
		return
	}

	b, err := a.bookmarkSvc.GetByID(item.ID)
	if err != nil || b == nil {
		a.detail.SetText(fmt.Sprintf("[red]cannot load bookmark %d[-]", item.ID))
		return
	}
	a.detail.SetText(renderBookmark(b))
	a.detail.ScrollToBeginning()
}

func (a *App) updateStatus() {
	var bookmarks, folders int
	for _, item := range a.items {
		if item.Type == models.ItemTypeBookmark {
			bookmarks++
		} else {
			folders++
		}
	}
	counts := fmt.Sprintf(" [::b]%d[::-] bookmarks, [::b]%d[::-] folders", bookmarks, folders)
	keys := "[::b]Tab[::-] switch  [::b]/[::-] search  [::b]Enter[::-] open  [::b]d[::-] del  [::b]q[::-] quit"
	if a.focusOnFolders {
		keys = "[::b]Tab[::-] switch  [::b]Enter[::-] select  [::b]d[::-] del folder  [::b]q[::-] quit"
	}
	a.status.SetText(keys + counts)
}

func (a *App) selectFolder(item folderItem) {
	a.selectedFolder = item.ID
	if item.ID == nil {
		a.folderList.SetTitle("Folders (All)")
		a.list.SetTitle("Items (Root)")
	} else {
		a.folderList.SetTitle(fmt.Sprintf("Folders (%s)", item.Name))
		a.list.SetTitle(fmt.Sprintf("Items (%s)", item.Name))
	}
	if err := a.loadFolderContent(); err != nil {
		a.showError(fmt.Sprintf("Error loading folder: %v", err))
	}
	a.focusOnFolders = false
	a.app.SetFocus(a.list)
	a.updateStatus()
}

func (a *App) toggleFocus() {
	a.focusOnFolders = !a.focusOnFolders
	if a.focusOnFolders {
		a.app.SetFocus(a.folderList)
	} else {
		a.app.SetFocus(a.list)
	}
	a.updateStatus()
}

func (a *App) setMode(m uint8) {
	a.mode = m
	switch m {
	case ModeSearch:
		a.app.SetFocus(a.search)
	case ModeNormal:
		if a.focusOnFolders {
			a.app.SetFocus(a.folderList)
		} else {
			a.app.SetFocus(a.list)
		}
	}
}

func (a *App) onSearchDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		a.setMode(ModeNormal)
	case tcell.KeyEscape:
		a.search.SetText("")
		a.setMode(ModeNormal)
	}
}

func (a *App) globalInput(event *tcell.EventKey) *tcell.EventKey {
	if a.mode != ModeNormal {
		return event
	}

	if event.Key() == tcell.KeyTab {
		a.toggleFocus()
		return nil
	}

	if event.Key() == tcell.KeyEnter {
		if a.focusOnFolders {
			if i := a.folderList.GetCurrentItem(); i >= 0 && i < len(a.folderItems) {
				a.selectFolder(a.folderItems[i])
			}
			return nil
		}
		a.openCurrent()
		return nil
	}

	if event.Key() != tcell.KeyRune {
		return event
	}
	switch event.Rune() {
	case 'q':
		a.app.Stop()
		return nil
	case '/':
		a.setMode(ModeSearch)
		return nil
	case 'd':
		a.deleteCurrent()
		return nil
	}
	return event
}

// openCurrent opens a bookmark in the browser or enters a folder.
func (a *App) openCurrent() {
	item := a.currentItem
	if item == nil {
		return
	}
	if item.Type == models.ItemTypeBookmark {
		if item.URL != nil && *item.URL != "" {
			openURL(*item.URL)
		}
		return
	}
	if i := indexOfFolder(a.folderItems, item.ID); i > 0 {
		a.folderList.SetCurrentItem(i)
		a.selectFolder(a.folderItems[i])
	}
}

func indexOfFolder(items []folderItem, id int) int {
	for i, f := range items {
		if f.ID != nil && *f.ID == id {
			return i
		}
	}
	return 0
}

func (a *App) deleteCurrent() {
	if a.focusOnFolders {
		i := a.folderList.GetCurrentItem()
		if i <= 0 || i >= len(a.folderItems) {
			return
		}
		f := a.folderItems[i]
		a.showConfirm(fmt.Sprintf("Delete folder '%s'? Its content moves up one level.", f.Name), func() {
			if err := a.folderSvc.Delete(*f.ID); err != nil {
				a.showError(fmt.Sprintf("Error deleting folder: %v", err))
				return
			}
			if a.selectedFolder != nil && *a.selectedFolder == *f.ID {
				a.selectedFolder = nil
			}
			_ = a.fillFolderList()
			_ = a.loadFolderContent()
		})
		return
	}

	item := a.currentItem
	if item == nil || item.Type != models.ItemTypeBookmark {
		return
	}
	id := item.ID
	a.showConfirm(fmt.Sprintf("Delete bookmark '%s'?", item.Name), func() {
		if err := a.bookmarkSvc.Delete(id); err != nil {
			a.showError(fmt.Sprintf("Error deleting bookmark: %v", err))
			return
		}
		_ = a.loadFolderContent()
	})
}

func (a *App) showError(message string) {
	a.showModal("error", "Error", message, []string{"OK"}, nil)
}

func (a *App) showConfirm(message string, onConfirm func()) {
	a.showModal("confirm", "Confirm", message, []string{"Cancel", "OK"}, func(buttonIndex int) {
		if buttonIndex == 1 && onConfirm != nil {
			onConfirm()
		}
	})
}

func (a *App) showModal(page, title, message string, buttons []string, done func(int)) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons(buttons).
		SetDoneFunc(func(buttonIndex int, _ string) {
			a.pages.RemovePage(page)
			a.setMode(ModeNormal)
			if done != nil {
				done(buttonIndex)
			}
		})
	modal.SetBorder(true).SetTitle(title)
	a.pages.AddPage(page, modal, true, true)
	a.mode = ModeModal
	a.app.SetFocus(modal)
}

func openURL(url string) {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default:
		cmd = "xdg-open"
	}
	args = append(args, url)
	_ = exec.Command(cmd, args...).Start()
}
