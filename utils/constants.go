package utils

var Version = "1.0.2"

var STATUS_SUCCESS = "success"
var STATUS_ERROR = "error"

var OP_TEST_CONNECTION = "test-connection"
var OP_LIST_FOLDERS = "list-folders"
var OP_LIST_FILES = "list"
var OP_DOWNLOAD = "download"
