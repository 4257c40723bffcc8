package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/draft --output domain/draft --outpkg draftmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/odds --output domain/odds --outpkg oddsmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name OwnershipRepository --dir ../domain/odds --output domain/odds --outpkg oddsmock --filename ownership_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/standing --output domain/standing --outpkg standingmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/team --output domain/team --outpkg teammock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/game --output domain/game --outpkg gamemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/jobscheduler --output domain/jobscheduler --outpkg jobschedulermock --filename repository_mock.go
