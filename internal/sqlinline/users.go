package sqlinline

const QSelectUserByID = `--sql 65afa729-f894-4049-be5d-c292b9539881
select id, coalesce(name, ''), phone, photo
from users
where id = $1::bigint
limit 1;
`

const QSelectUserPhotos = `--sql c5a08ac0-670e-417a-903b-4a81a9bb8610
select id, photo
from users
where id = any($1::bigint[])
  and photo is not null
  and photo <> '';
`
