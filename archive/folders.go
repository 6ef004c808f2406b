package archive

import (
	"strings"

	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
)

// ListFolders returns the folders that can be archived, in the order sent by the server.
// A listing failure is reported as lib.ErrProtocol, so it cannot be mistaken for an account without folder.
func ListFolders(session Session) ([]mailbox.Info, error) {
	list, err := session.ListMailbox()
	if err != nil {
		return nil, newError(lib.ErrProtocol, mailbox.EmptyMessageID, err)
	}
	folders := make([]mailbox.Info, 0, len(list))
	for _, info := range list {
		info.Name = strings.Trim(info.Name, "\" \t")
		if info.Name == "" || !info.Selectable() {
			continue
		}
		folders = append(folders, info)
	}
	return folders, nil
}
