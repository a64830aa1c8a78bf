package dirhandler

import (
    "errors"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/jrm-1535/tiffmeta/directory"
)

func TestPushSetsParentToCurrentTop(t *testing.T) {
    var b Base
    root := b.PushDirectory(directory.KindExifIFD0)
    require.Nil(t, root.Parent())

    sub := b.PushDirectory(directory.KindExifSubIFD)
    require.Same(t, root, sub.Parent())
}

func TestPopRestoresPreviousCurrent(t *testing.T) {
    var b Base
    root := b.PushDirectory(directory.KindExifIFD0)
    b.PushDirectory(directory.KindExifSubIFD)
    b.PopDirectory()
    require.Same(t, root, b.Current())
}

func TestDirectoriesAccumulateInPushOrder(t *testing.T) {
    var b Base
    b.PushDirectory(directory.KindExifIFD0)
    b.PushDirectory(directory.KindGPS)
    b.PopDirectory()
    b.PushDirectory(directory.KindThumbnail)

    kinds := []directory.Kind{}
    for _, d := range b.Directories() {
        kinds = append(kinds, d.Kind())
    }
    require.Equal(t, []directory.Kind{directory.KindExifIFD0, directory.KindGPS, directory.KindThumbnail}, kinds)
}

func TestErrorRecordsOnCurrentDirectory(t *testing.T) {
    var b Base
    b.PushDirectory(directory.KindExifIFD0)
    b.Error(errors.New("boom"))
    require.Len(t, b.Current().Errors(), 1)
}

func TestErrorBeforeAnyPushIsDropped(t *testing.T) {
    var b Base
    require.NotPanics(t, func() { b.Error(errors.New("boom")) })
}
